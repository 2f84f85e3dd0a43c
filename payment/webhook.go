package payment

import (
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// 回调事件里只取后续处理需要的部分
type WebhookEvent struct {
	Type     string
	IntentId string
	Metadata Metadata
}

// 校验Stripe签名并解析事件，签名不合法直接报错
func VerifyWebhook(payload []byte, sigHeader, secret string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	e := &WebhookEvent{Type: string(event.Type)}
	switch e.Type {
	case EventPaymentSucceeded, EventPaymentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, fmt.Errorf("failed to parse payment intent: %w", err)
		}
		e.IntentId = intent.ID
		e.Metadata = decodeMetadata(intent.Metadata)
	}
	return e, nil
}
