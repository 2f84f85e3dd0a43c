package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vksolaris/enum"
	"vksolaris/model"
	"vksolaris/query"
	"vksolaris/utils"
)

type UserRepository struct {
	DB *gorm.DB
}

type UserRepoInterface interface {
	List(ctx context.Context, req *query.UserListQuery) ([]*model.User, error)
	GetTotal(ctx context.Context, req *query.UserListQuery) (int64, error)
	Get(ctx context.Context, userId uint64) (*model.User, error)
	GetByUserName(ctx context.Context, userName string) (*model.User, error)
	ExistByUserName(ctx context.Context, userName string) (bool, error)
	ExistByEmail(ctx context.Context, email string, excludeUserId uint64) (bool, error)
	CreateUser(ctx context.Context, user *model.User) error
	EditProfile(ctx context.Context, user *model.User) error
	UpdateStatus(ctx context.Context, userId uint64, status enum.UserStatus) (bool, error)
	UpdateDiscount(ctx context.Context, userId uint64, discount int) (bool, error)
	SetStripeCustomerId(ctx context.Context, userId uint64, customerId string) error
}

// 过滤条件与后台用户列表共用
func (repo *UserRepository) applyFilter(db *gorm.DB, req *query.UserListQuery) *gorm.DB {
	if req.Status != "" {
		db = db.Where("status=?", req.Status)
	}
	if req.HasSeasonTicket != nil {
		db = db.Where("has_season_ticket=?", *req.HasSeasonTicket)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		db = db.Where("first_name LIKE ? OR last_name LIKE ? OR user_name LIKE ? OR email LIKE ?", like, like, like, like)
	}
	return db
}

func (repo *UserRepository) List(ctx context.Context, req *query.UserListQuery) ([]*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db := repo.applyFilter(repo.DB.WithContext(ctx), req)
	limit, offset := utils.GetLimitAndOffset(req.Page, req.PageSize)
	var users []*model.User
	err := db.Order("create_at desc").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (repo *UserRepository) GetTotal(ctx context.Context, req *query.UserListQuery) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	db := repo.applyFilter(repo.DB.WithContext(ctx), req)
	var total int64
	err := db.Model(&model.User{}).Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (repo *UserRepository) Get(ctx context.Context, userId uint64) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	User := model.User{}
	err := repo.DB.WithContext(ctx).Where("user_id=?", userId).First(&User).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &User, nil
}

func (repo *UserRepository) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	User := model.User{}
	err := repo.DB.WithContext(ctx).Where("user_name=?", userName).First(&User).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &User, nil
}

func (repo *UserRepository) ExistByUserName(ctx context.Context, userName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var count int64
	err := repo.DB.WithContext(ctx).Model(&model.User{}).Where("user_name=?", userName).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *UserRepository) ExistByEmail(ctx context.Context, email string, excludeUserId uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	db := repo.DB.WithContext(ctx).Model(&model.User{}).Where("email=?", email)
	if excludeUserId > 0 {
		db = db.Where("user_id<>?", excludeUserId)
	}
	var count int64
	err := db.Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.DB.WithContext(ctx).Create(user).Error
}

func (repo *UserRepository) EditProfile(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.DB.WithContext(ctx).Model(&model.User{}).Where("user_id=?", user.UserId).Updates(map[string]interface{}{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"update_at":  time.Now(),
	}).Error
}

func (repo *UserRepository) UpdateStatus(ctx context.Context, userId uint64, status enum.UserStatus) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	result := repo.DB.WithContext(ctx).Model(&model.User{}).Where("user_id=?", userId).Updates(map[string]interface{}{
		"status":    status,
		"update_at": time.Now(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *UserRepository) UpdateDiscount(ctx context.Context, userId uint64, discount int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	result := repo.DB.WithContext(ctx).Model(&model.User{}).Where("user_id=?", userId).Updates(map[string]interface{}{
		"discount_percentage": discount,
		"update_at":           time.Now(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// 首次购票时懒创建Stripe客户后落库，之后复用
func (repo *UserRepository) SetStripeCustomerId(ctx context.Context, userId uint64, customerId string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.DB.WithContext(ctx).Model(&model.User{}).Where("user_id=?", userId).Updates(map[string]interface{}{
		"stripe_customer_id": customerId,
		"update_at":          time.Now(),
	}).Error
}
