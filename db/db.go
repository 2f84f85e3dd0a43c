package db

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"vksolaris/model"
)

var (
	DB    *gorm.DB
	Redis *redis.Client
	MQ    *amqp.Connection
)

func InitDatabase() {
	conf := &model.DBConf{
		Host:     viper.GetString("database.host"),
		Port:     viper.GetString("database.port"),
		User:     viper.GetString("database.username"),
		Password: viper.GetString("database.password"),
		DBName:   viper.GetString("database.name"),
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.User,
		conf.Password,
		conf.Host,
		conf.Port,
		conf.DBName,
	)
	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect database")
	}

	// uk_user_season等唯一索引随迁移建立
	err = DB.AutoMigrate(&model.User{}, &model.AdminUser{}, &model.SeasonTicket{})
	if err != nil {
		panic(fmt.Sprintf("failed to migrate database: %v", err))
	}
}

func InitRedis() {
	conf := &model.RedisConf{
		Host:     viper.GetString("redis.host"),
		Port:     viper.GetString("redis.port"),
		Password: viper.GetString("redis.password"),
	}
	Redis = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", conf.Host, conf.Port),
		Password: conf.Password,
	})
}

func InitMQ() {
	conn, err := amqp.Dial(viper.GetString("rabbitmq.url"))
	if err != nil {
		panic(fmt.Sprintf("failed to connect rabbitmq: %v", err))
	}
	MQ = conn
}
