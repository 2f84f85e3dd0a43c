package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vksolaris/config"
	"vksolaris/enum"
	"vksolaris/repository"
	"vksolaris/response"
	"vksolaris/utils"
)

const (
	CtxUser  = "ctx_user"
	CtxAdmin = "ctx_admin"
)

func abort(c *gin.Context, status int, code enum.OperateType, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"entity": response.Entity{
		Code: int(code),
		Msg:  msg,
	}})
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// 会员鉴权，token有效后回查用户并拦截已停用账号
func JwtAuth(userRepo repository.UserRepoInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, enum.OperateUnauthorized, "Access token required")
			return
		}

		claims, err := utils.ParseToken(config.JwtSecret(), token)
		if err != nil || claims.UserId == 0 {
			abort(c, http.StatusForbidden, enum.OperateForbidden, "Invalid or expired token")
			return
		}

		user, err := userRepo.Get(c.Request.Context(), claims.UserId)
		if err != nil {
			abort(c, http.StatusInternalServerError, enum.OperateFailed, enum.OperateFailed.String())
			return
		}
		if user == nil {
			abort(c, http.StatusUnauthorized, enum.OperateUnauthorized, "User not found")
			return
		}
		if user.Status == enum.UserStatusSuspended {
			abort(c, http.StatusForbidden, enum.OperateForbidden, "Account suspended")
			return
		}

		c.Set(CtxUser, user)
		c.Next()
	}
}

// 管理员鉴权
func AdminAuth(adminRepo repository.AdminRepoInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, enum.OperateUnauthorized, "Access token required")
			return
		}

		claims, err := utils.ParseToken(config.JwtSecret(), token)
		if err != nil || claims.AdminId == 0 {
			abort(c, http.StatusForbidden, enum.OperateForbidden, "Invalid or expired admin token")
			return
		}

		admin, err := adminRepo.Get(c.Request.Context(), claims.AdminId)
		if err != nil {
			abort(c, http.StatusInternalServerError, enum.OperateFailed, enum.OperateFailed.String())
			return
		}
		if admin == nil {
			abort(c, http.StatusUnauthorized, enum.OperateUnauthorized, "Admin not found")
			return
		}

		c.Set(CtxAdmin, admin)
		c.Next()
	}
}
