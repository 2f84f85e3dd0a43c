package model

import (
	"time"

	"vksolaris/enum"
)

// 赛季票为历史记录，创建后不再修改
// (user_id, season_year) 上的唯一索引是防止重复出票的最终保证
type SeasonTicket struct {
	TicketId        int64           `json:"ticket_id" gorm:"column:ticket_id;primaryKey"`
	UserId          uint64          `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:uk_user_season"`
	SeasonYear      int             `json:"season_year" gorm:"column:season_year;not null;uniqueIndex:uk_user_season"`
	AmountPaid      float64         `json:"amount_paid" gorm:"column:amount_paid;type:decimal(10,2);not null"`
	PaymentIntentId string          `json:"-" gorm:"column:payment_intent_id;type:varchar(255);uniqueIndex:uk_payment_intent"`
	TicketType      enum.TicketType `json:"ticket_type" gorm:"column:ticket_type;type:varchar(50);default:regular"`
	IsActive        bool            `json:"is_active" gorm:"column:is_active;default:true"`
	PurchaseTime    time.Time       `json:"purchase_at" gorm:"column:purchase_at;autoCreateTime"`
	CreateTime      time.Time       `json:"create_at" gorm:"column:create_at;autoCreateTime"`
}

func (SeasonTicket) TableName() string { return "season_tickets" }

// 后台仪表盘聚合数据
type DashboardStats struct {
	TotalUsers          int64            `json:"total_users"`
	UsersByStatus       map[string]int64 `json:"users_by_status"`
	SeasonTicketsSold   int64            `json:"season_tickets_sold"`
	Revenue             float64          `json:"revenue"`
	RecentRegistrations int64            `json:"recent_registrations"`
}
