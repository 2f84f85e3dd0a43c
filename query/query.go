package query

// 列表查询参数
type ListQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"limit"`
}

// 后台用户列表的过滤条件
type UserListQuery struct {
	ListQuery
	Status          string `form:"status"`
	Search          string `form:"search"`
	HasSeasonTicket *bool  `form:"has_season_ticket"`
}
