package main

import (
	"context"
	"log"

	"github.com/spf13/viper"

	"vksolaris/api"
	"vksolaris/api/handler"
	"vksolaris/config"
	"vksolaris/db"
	"vksolaris/mq/receiver"
	"vksolaris/mq/sender"
	"vksolaris/payment"
	"vksolaris/repository"
	"vksolaris/service"
)

func main() {
	if err := config.Init(""); err != nil {
		panic("failed to init config")
	}
	db.InitDatabase()
	db.InitRedis()
	db.InitMQ()

	userRepo := &repository.UserRepository{DB: db.DB}
	ticketRepo := &repository.TicketRepository{DB: db.DB}
	adminRepo := &repository.AdminRepository{DB: db.DB}
	statsRepo := &repository.StatsRepository{DB: db.DB, Rdb: db.Redis}

	provider := payment.NewStripeProvider(config.StripeSecretKey())

	userService := &service.UserService{UserRepo: userRepo, TicketRepo: ticketRepo}
	purchaseService := &service.PurchaseService{
		UserRepo:   userRepo,
		TicketRepo: ticketRepo,
		Provider:   provider,
		BasePrice:  config.BasePrice,
		Currency:   config.Currency,
	}
	adminService := &service.AdminService{
		AdminRepo:  adminRepo,
		UserRepo:   userRepo,
		TicketRepo: ticketRepo,
		StatsRepo:  statsRepo,
	}

	mqSender := sender.NewSender(db.MQ)

	authHandler := &handler.AuthHandler{UserService: userService, AdminService: adminService}
	userHandler := &handler.UserHandler{UserService: userService, PurchaseService: purchaseService}
	adminHandler := &handler.AdminHandler{AdminService: adminService, PurchaseService: purchaseService}
	purchaseHandler := &handler.PurchaseHandler{PurchaseService: purchaseService, Sender: mqSender}

	// webhook支付事件消费者，和客户端确认共用同一个幂等入口
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mqReceiver := receiver.NewReceiver(db.MQ, purchaseService)
	go func() {
		if err := mqReceiver.StartPaymentConsumer(ctx); err != nil {
			log.Printf("支付事件消费者退出: %v", err)
		}
	}()

	router := api.InitRouter(db.DB, userRepo, adminRepo, authHandler, userHandler, adminHandler, purchaseHandler)
	if err := router.Run(":" + viper.GetString("server.port")); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
