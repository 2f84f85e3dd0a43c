package payment

import (
	"context"
	"fmt"
	"strconv"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"vksolaris/model"
)

type StripeProvider struct {
	sc *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeProvider{sc: sc}
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, user *model.User) (string, error) {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	}
	params.AddMetadata("user_id", strconv.FormatUint(user.UserId, 10))
	params.AddMetadata("user_name", user.UserName)

	customer, err := p.sc.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return customer.ID, nil
}

func (p *StripeProvider) CreateSession(ctx context.Context, amount int64, currency, customerId string, meta Metadata, description string) (*Session, error) {
	params := &stripe.PaymentIntentParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(currency),
		Customer:    stripe.String(customerId),
		Description: stripe.String(description),
	}
	for k, v := range encodeMetadata(meta) {
		params.AddMetadata(k, v)
	}

	intent, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return sessionFromIntent(intent), nil
}

func (p *StripeProvider) RetrieveSession(ctx context.Context, intentId string) (*Session, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}
	intent, err := p.sc.PaymentIntents.Get(intentId, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return sessionFromIntent(intent), nil
}

func sessionFromIntent(intent *stripe.PaymentIntent) *Session {
	return &Session{
		IntentId:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Status:       string(intent.Status),
		Metadata:     decodeMetadata(intent.Metadata),
	}
}

// 元数据经由Stripe原样往返，全部按字符串编码
func encodeMetadata(meta Metadata) map[string]string {
	return map[string]string{
		"user_id":             strconv.FormatUint(meta.UserId, 10),
		"season_year":         strconv.Itoa(meta.SeasonYear),
		"original_amount":     strconv.FormatInt(meta.OriginalAmount, 10),
		"discount_percentage": strconv.Itoa(meta.DiscountPercentage),
		"discount_amount":     strconv.FormatInt(meta.DiscountAmount, 10),
	}
}

func decodeMetadata(m map[string]string) Metadata {
	meta := Metadata{}
	meta.UserId, _ = strconv.ParseUint(m["user_id"], 10, 64)
	meta.SeasonYear, _ = strconv.Atoi(m["season_year"])
	meta.OriginalAmount, _ = strconv.ParseInt(m["original_amount"], 10, 64)
	meta.DiscountPercentage, _ = strconv.Atoi(m["discount_percentage"])
	meta.DiscountAmount, _ = strconv.ParseInt(m["discount_amount"], 10, 64)
	return meta
}
