package model

import (
	"time"

	"vksolaris/enum"
)

type AdminUser struct {
	AdminId    uint64         `json:"admin_id" gorm:"column:admin_id;primaryKey;autoIncrement"`
	UserName   string         `json:"user_name" gorm:"column:user_name;type:varchar(100);not null;uniqueIndex:uk_admin_name"`
	Email      string         `json:"email" gorm:"column:email;type:varchar(255);not null;uniqueIndex:uk_admin_email"`
	UserPwd    string         `json:"-" gorm:"column:user_pwd;type:varchar(255);not null"`
	Role       enum.AdminRole `json:"role" gorm:"column:role;type:varchar(20);default:admin"`
	CreateTime time.Time      `json:"create_at" gorm:"column:create_at;autoCreateTime"`
	UpdateTime time.Time      `json:"update_at" gorm:"column:update_at;autoUpdateTime"`
}

func (AdminUser) TableName() string { return "admin_users" }
