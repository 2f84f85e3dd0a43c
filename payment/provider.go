package payment

import (
	"context"
	"errors"

	"vksolaris/model"
)

// 支付会话状态，与Stripe payment intent状态对齐
const StatusSucceeded = "succeeded"

var ErrProviderUnavailable = errors.New("payment provider unavailable")

// 随支付会话往返的元数据，确认时以此为准
type Metadata struct {
	UserId             uint64
	SeasonYear         int
	OriginalAmount     int64
	DiscountPercentage int
	DiscountAmount     int64
}

type Session struct {
	IntentId     string
	ClientSecret string
	Amount       int64 //单位分
	Currency     string
	Status       string
	Metadata     Metadata
}

// 外部支付服务，三个操作都是网络调用，失败不在内部重试
type Provider interface {
	CreateCustomer(ctx context.Context, user *model.User) (string, error)
	CreateSession(ctx context.Context, amount int64, currency, customerId string, meta Metadata, description string) (*Session, error)
	RetrieveSession(ctx context.Context, intentId string) (*Session, error)
}
