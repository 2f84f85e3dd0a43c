package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vksolaris/enum"
	"vksolaris/model"
	"vksolaris/response"
	"vksolaris/service"
	"vksolaris/utils"
)

type AuthHandler struct {
	UserService  service.UserSrv
	AdminService service.AdminSrv
}

type registerRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string  `json:"last_name" binding:"required,min=2,max=100"`
	UserName  string  `json:"user_name" binding:"required,min=3,max=100"`
	Password  string  `json:"password" binding:"required,min=6,max=128"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

type loginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Validation failed: "+err.Error())
		return
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		Email:     req.Email,
	}
	created, token, err := h.UserService.Register(c.Request.Context(), user, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entity": response.Entity{
		Code: int(enum.OperateOK),
		Msg:  "User registered successfully",
		Data: response.Login{User: userEntity(*created), Token: token},
	}})
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, token, err := h.UserService.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, response.Login{User: userEntity(*user), Token: token})
}

func (h *AuthHandler) AdminLoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Validation failed: "+err.Error())
		return
	}

	admin, token, err := h.AdminService.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, response.Login{
		User: response.Admin{
			ID:       utils.GetUUID(),
			Key:      utils.GetUUID(),
			AdminId:  admin.AdminId,
			UserName: admin.UserName,
			Email:    admin.Email,
			Role:     string(admin.Role),
		},
		Token: token,
	})
}
