package response

import (
	"time"

	"vksolaris/enum"
)

type Entity struct {
	Code      int         `json:"code"`
	Msg       string      `json:"msg"`
	Total     int         `json:"total"`
	TotalPage int         `json:"total_page"`
	Data      interface{} `json:"data"`
}

type User struct {
	ID                 string    `json:"id"`
	Key                string    `json:"key"`
	UserId             uint64    `json:"user_id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	UserName           string    `json:"user_name"`
	Email              string    `json:"email"`
	Status             string    `json:"status"`
	HasSeasonTicket    bool      `json:"has_season_ticket"`
	DiscountPercentage int       `json:"discount_percentage"`
	SeasonTicketYear   int       `json:"season_ticket_year"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Admin struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	AdminId  uint64 `json:"admin_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type Ticket struct {
	ID           string          `json:"id"`
	Key          string          `json:"key"`
	TicketId     int64           `json:"ticket_id"`
	SeasonYear   int             `json:"season_year"`
	AmountPaid   float64         `json:"amount_paid"`
	TicketType   enum.TicketType `json:"ticket_type"`
	IsActive     bool            `json:"is_active"`
	PurchaseTime time.Time       `json:"purchase_at"`
}

type Login struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

type CanPurchase struct {
	CanPurchase          bool   `json:"can_purchase"`
	Reason               string `json:"reason,omitempty"`
	CurrentYear          int    `json:"current_year"`
	UserStatus           string `json:"user_status"`
	HasCurrentYearTicket bool   `json:"has_current_year_ticket"`
}

type Pagination struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"total_page"`
}

type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type UserDetail struct {
	User    User     `json:"user"`
	Tickets []Ticket `json:"season_tickets"`
}
