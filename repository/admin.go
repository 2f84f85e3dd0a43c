package repository

import (
	"context"

	"gorm.io/gorm"

	"vksolaris/model"
)

type AdminRepository struct {
	DB *gorm.DB
}

type AdminRepoInterface interface {
	Get(ctx context.Context, adminId uint64) (*model.AdminUser, error)
	GetByUserName(ctx context.Context, userName string) (*model.AdminUser, error)
}

func (repo *AdminRepository) Get(ctx context.Context, adminId uint64) (*model.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Admin := model.AdminUser{}
	err := repo.DB.WithContext(ctx).Where("admin_id=?", adminId).First(&Admin).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &Admin, nil
}

func (repo *AdminRepository) GetByUserName(ctx context.Context, userName string) (*model.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Admin := model.AdminUser{}
	err := repo.DB.WithContext(ctx).Where("user_name=?", userName).First(&Admin).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &Admin, nil
}
