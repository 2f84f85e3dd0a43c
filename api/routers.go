package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vksolaris/api/handler"
	"vksolaris/api/middleware"
	"vksolaris/repository"
)

func InitRouter(
	db *gorm.DB,
	userRepo repository.UserRepoInterface,
	adminRepo repository.AdminRepoInterface,
	AuthHandler *handler.AuthHandler,
	UserHandler *handler.UserHandler,
	AdminHandler *handler.AdminHandler,
	PurchaseHandler *handler.PurchaseHandler,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	// 健康检查，带数据库探活
	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":    "Error",
				"message":   "Database connection failed",
				"timestamp": time.Now().Format(time.RFC3339),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "Server and database are running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	apiGroup := router.Group("/api")

	// 认证相关路由
	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/register", AuthHandler.RegisterHandler)
		authGroup.POST("/login", AuthHandler.LoginHandler)
		authGroup.POST("/admin/login", AuthHandler.AdminLoginHandler)
	}

	// 会员相关路由
	userGroup := apiGroup.Group("/users")
	userGroup.Use(middleware.JwtAuth(userRepo))
	{
		userGroup.GET("/me", UserHandler.UserInfoHandler)
		userGroup.PATCH("/me", UserHandler.UserEditHandler)
		userGroup.GET("/season-tickets", UserHandler.UserTicketsHandler)
		userGroup.GET("/can-purchase-ticket", UserHandler.CanPurchaseHandler)
	}

	// 购票支付相关路由，webhook不走鉴权，签名校验在handler内
	stripeGroup := apiGroup.Group("/stripe")
	{
		stripeGroup.POST("/webhook", PurchaseHandler.WebhookHandler)

		authed := stripeGroup.Group("")
		authed.Use(middleware.JwtAuth(userRepo))
		{
			authed.POST("/create-payment-intent", PurchaseHandler.CreatePaymentIntentHandler)
			authed.POST("/confirm-payment", PurchaseHandler.ConfirmPaymentHandler)
			authed.GET("/pricing", PurchaseHandler.PricingHandler)
		}
	}

	// 后台管理路由
	adminGroup := apiGroup.Group("/admin")
	adminGroup.Use(middleware.AdminAuth(adminRepo))
	{
		adminGroup.GET("/users", AdminHandler.UserListHandler)
		adminGroup.GET("/users/:user_id", AdminHandler.UserDetailHandler)
		adminGroup.PATCH("/users/:user_id/status", AdminHandler.UserStatusHandler)
		adminGroup.PATCH("/users/:user_id/discount", AdminHandler.UserDiscountHandler)
		adminGroup.GET("/dashboard/stats", AdminHandler.DashboardHandler)
	}

	return router
}
