package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vksolaris/enum"
	"vksolaris/response"
	"vksolaris/service"
)

type UserHandler struct {
	UserService     service.UserSrv
	PurchaseService service.PurchaseSrv
}

type editProfileRequest struct {
	FirstName string  `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName  string  `json:"last_name" binding:"omitempty,min=2,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

func (h *UserHandler) UserInfoHandler(c *gin.Context) {
	ok(c, userEntity(*currentUser(c)))
}

func (h *UserHandler) UserEditHandler(c *gin.Context) {
	var req editProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Validation failed: "+err.Error())
		return
	}
	if req.FirstName == "" && req.LastName == "" && (req.Email == nil || *req.Email == "") {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "No valid fields to update")
		return
	}

	user := currentUser(c)
	updated, err := h.UserService.EditProfile(c.Request.Context(), user.UserId, req.FirstName, req.LastName, req.Email)
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, userEntity(*updated))
}

func (h *UserHandler) UserTicketsHandler(c *gin.Context) {
	user := currentUser(c)
	tickets, err := h.UserService.Tickets(c.Request.Context(), user.UserId)
	if err != nil {
		failFromError(c, err)
		return
	}

	list := make([]response.Ticket, 0, len(tickets))
	for _, t := range tickets {
		list = append(list, ticketEntity(*t))
	}
	c.JSON(http.StatusOK, gin.H{"entity": response.Entity{
		Code:  int(enum.OperateOK),
		Msg:   "success",
		Total: len(list),
		Data:  list,
	}})
}

// 购票资格查询，仅为前端展示用的快速路径
func (h *UserHandler) CanPurchaseHandler(c *gin.Context) {
	user := currentUser(c)
	seasonYear := h.PurchaseService.SeasonYear()

	allowed, reason, err := h.PurchaseService.CanPurchase(c.Request.Context(), user, seasonYear)
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, response.CanPurchase{
		CanPurchase:          allowed,
		Reason:               reason.String(),
		CurrentYear:          seasonYear,
		UserStatus:           user.Status.String(),
		HasCurrentYearTicket: reason == enum.DenyTicketAlreadyExists,
	})
}
