package config

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	PageSize    = 20
	MaxPageSize = 100
)

type Config struct {
	Name string
}

func Init(name string) error {
	c := Config{
		Name: name,
	}
	if err := c.InitConfig(); err != nil {
		return err
	}

	c.WatchConfig()
	return nil
}

// viper库初始化config
func (c *Config) InitConfig() error {
	if c.Name != "" {
		viper.SetConfigName(c.Name)
	} else {
		viper.AddConfigPath("conf")
		viper.SetConfigName("config")
	}
	viper.SetConfigType("yaml")

	// 业务默认值，可被配置文件覆盖
	viper.SetDefault("ticket.base_price", 10000) // $100.00，单位分
	viper.SetDefault("ticket.currency", "usd")
	viper.SetDefault("server.port", "3000")
	viper.SetDefault("jwt.user_expire_hours", 168)
	viper.SetDefault("jwt.admin_expire_hours", 24)

	err := viper.ReadInConfig()
	if err != nil {
		return err
	}
	return nil
}

// 监控配置文件变化并热加载
func (c *Config) WatchConfig() {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
	})
}

// 赛季票基础票价，单位分
func BasePrice() int64 {
	return viper.GetInt64("ticket.base_price")
}

func Currency() string {
	return viper.GetString("ticket.currency")
}

func JwtSecret() string {
	return viper.GetString("jwt.secret")
}

func UserTokenExpire() time.Duration {
	return time.Duration(viper.GetInt("jwt.user_expire_hours")) * time.Hour
}

func AdminTokenExpire() time.Duration {
	return time.Duration(viper.GetInt("jwt.admin_expire_hours")) * time.Hour
}

func StripeSecretKey() string {
	return viper.GetString("stripe.secret_key")
}

func StripeWebhookSecret() string {
	return viper.GetString("stripe.webhook_secret")
}
