package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vksolaris/api/middleware"
	"vksolaris/enum"
	"vksolaris/model"
	"vksolaris/payment"
	"vksolaris/response"
	"vksolaris/service"
	"vksolaris/utils"
)

func fail(c *gin.Context, status int, code enum.OperateType, msg string) {
	c.JSON(status, gin.H{"entity": response.Entity{
		Code: int(code),
		Msg:  msg,
	}})
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"entity": response.Entity{
		Code: int(enum.OperateOK),
		Msg:  "success",
		Data: data,
	}})
}

// 拒绝原因到HTTP状态码的映射
func denyStatus(reason enum.DenyReason) (int, enum.OperateType) {
	switch reason {
	case enum.DenyAccountNotConfirmed, enum.DenyOwnershipMismatch:
		return http.StatusForbidden, enum.OperateForbidden
	case enum.DenyTicketAlreadyExists:
		return http.StatusConflict, enum.OperateConflict
	default:
		return http.StatusBadRequest, enum.OperateBadRequest
	}
}

// 统一的业务错误出口，支付相关错误在这里翻译成对外响应
func failFromError(c *gin.Context, err error) {
	if reason, isDeny := service.AsDenyReason(err); isDeny {
		status, code := denyStatus(reason)
		c.JSON(status, gin.H{"entity": response.Entity{
			Code: int(code),
			Msg:  reason.Message(),
			Data: gin.H{"reason": reason.String()},
		}})
		return
	}
	switch {
	case errors.Is(err, payment.ErrProviderUnavailable):
		fail(c, http.StatusBadGateway, enum.OperateUpstreamBad, "Payment provider unavailable, please try again")
	case errors.Is(err, service.ErrUserNotFound):
		fail(c, http.StatusNotFound, enum.OperateNotFound, "User not found")
	case errors.Is(err, service.ErrUserExists):
		fail(c, http.StatusConflict, enum.OperateConflict, "Username already exists")
	case errors.Is(err, service.ErrEmailExists):
		fail(c, http.StatusConflict, enum.OperateConflict, "Email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, enum.OperateUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrAccountSuspended):
		fail(c, http.StatusForbidden, enum.OperateForbidden, "Account suspended")
	case errors.Is(err, service.ErrInvalidDiscount):
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Discount must be between 0 and 100")
	default:
		fail(c, http.StatusInternalServerError, enum.OperateFailed, enum.OperateFailed.String())
	}
}

func currentUser(c *gin.Context) *model.User {
	return c.MustGet(middleware.CtxUser).(*model.User)
}

func currentAdmin(c *gin.Context) *model.AdminUser {
	return c.MustGet(middleware.CtxAdmin).(*model.AdminUser)
}

func userEntity(user model.User) response.User {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return response.User{
		ID:                 utils.GetUUID(),
		Key:                utils.GetUUID(),
		UserId:             user.UserId,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		UserName:           user.UserName,
		Email:              email,
		Status:             user.Status.String(),
		HasSeasonTicket:    user.HasSeasonTicket,
		DiscountPercentage: user.DiscountPercentage,
		SeasonTicketYear:   user.SeasonTicketYear,
		CreatedAt:          user.CreateTime,
		UpdatedAt:          user.UpdateTime,
	}
}

func ticketEntity(ticket model.SeasonTicket) response.Ticket {
	return response.Ticket{
		ID:           utils.GetUUID(),
		Key:          utils.GetUUID(),
		TicketId:     ticket.TicketId,
		SeasonYear:   ticket.SeasonYear,
		AmountPaid:   ticket.AmountPaid,
		TicketType:   ticket.TicketType,
		IsActive:     ticket.IsActive,
		PurchaseTime: ticket.PurchaseTime,
	}
}
