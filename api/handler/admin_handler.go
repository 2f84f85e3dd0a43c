package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vksolaris/config"
	"vksolaris/enum"
	"vksolaris/query"
	"vksolaris/response"
	"vksolaris/service"
)

type AdminHandler struct {
	AdminService    service.AdminSrv
	PurchaseService service.PurchaseSrv
}

type updateStatusRequest struct {
	Status enum.UserStatus `json:"status" binding:"required,oneof=pending confirmed suspended"`
}

type updateDiscountRequest struct {
	DiscountPercentage *int `json:"discount_percentage" binding:"required,min=0,max=100"`
}

func parseUserId(c *gin.Context) (uint64, bool) {
	userId, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userId == 0 {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Invalid user id")
		return 0, false
	}
	return userId, true
}

func (h *AdminHandler) UserListHandler(c *gin.Context) {
	var q query.UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Validation failed: "+err.Error())
		return
	}
	if q.Status != "" && !enum.UserStatus(q.Status).Valid() {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Invalid status filter")
		return
	}

	users, total, err := h.AdminService.ListUsers(c.Request.Context(), &q)
	if err != nil {
		failFromError(c, err)
		return
	}

	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = config.PageSize
	}
	totalPage := int(total) / q.PageSize
	if int(total)%q.PageSize > 0 {
		totalPage++
	}

	list := make([]response.User, 0, len(users))
	for _, u := range users {
		list = append(list, userEntity(*u))
	}
	c.JSON(http.StatusOK, gin.H{"entity": response.Entity{
		Code:      int(enum.OperateOK),
		Msg:       "success",
		Total:     int(total),
		TotalPage: totalPage,
		Data: response.UserList{
			Users: list,
			Pagination: response.Pagination{
				Page:      q.Page,
				Limit:     q.PageSize,
				Total:     total,
				TotalPage: totalPage,
			},
		},
	}})
}

func (h *AdminHandler) UserDetailHandler(c *gin.Context) {
	userId, valid := parseUserId(c)
	if !valid {
		return
	}

	user, tickets, err := h.AdminService.GetUserDetail(c.Request.Context(), userId)
	if err != nil {
		failFromError(c, err)
		return
	}

	list := make([]response.Ticket, 0, len(tickets))
	for _, t := range tickets {
		list = append(list, ticketEntity(*t))
	}
	ok(c, response.UserDetail{
		User:    userEntity(*user),
		Tickets: list,
	})
}

// 管理员审核或停用账号
func (h *AdminHandler) UserStatusHandler(c *gin.Context) {
	userId, valid := parseUserId(c)
	if !valid {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.AdminService.UpdateUserStatus(c.Request.Context(), userId, req.Status)
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, userEntity(*user))
}

func (h *AdminHandler) UserDiscountHandler(c *gin.Context) {
	userId, valid := parseUserId(c)
	if !valid {
		return
	}

	var req updateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.AdminService.UpdateUserDiscount(c.Request.Context(), userId, *req.DiscountPercentage)
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, userEntity(*user))
}

func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	stats, err := h.AdminService.Dashboard(c.Request.Context(), h.PurchaseService.SeasonYear())
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, stats)
}
