package model

import (
	"time"

	"vksolaris/enum"
)

type User struct {
	UserId             uint64          `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement"`
	FirstName          string          `json:"first_name" gorm:"column:first_name;type:varchar(100);not null"`
	LastName           string          `json:"last_name" gorm:"column:last_name;type:varchar(100);not null"`
	UserName           string          `json:"user_name" gorm:"column:user_name;type:varchar(100);not null;uniqueIndex:uk_user_name"`
	Email              *string         `json:"email" gorm:"column:email;type:varchar(255);uniqueIndex:uk_email"`
	UserPwd            string          `json:"-" gorm:"column:user_pwd;type:varchar(255);not null"`
	Status             enum.UserStatus `json:"status" gorm:"column:status;type:varchar(20);default:pending"`
	DiscountPercentage int             `json:"discount_percentage" gorm:"column:discount_percentage;default:0"`
	HasSeasonTicket    bool            `json:"has_season_ticket" gorm:"column:has_season_ticket;default:false"`
	SeasonTicketYear   int             `json:"season_ticket_year" gorm:"column:season_ticket_year"`
	StripeCustomerId   string          `json:"-" gorm:"column:stripe_customer_id;type:varchar(255)"`
	WalletPassId       string          `json:"-" gorm:"column:wallet_pass_id;type:varchar(255)"`
	CreateTime         time.Time       `json:"create_at" gorm:"column:create_at;autoCreateTime"`
	UpdateTime         time.Time       `json:"update_at" gorm:"column:update_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }
