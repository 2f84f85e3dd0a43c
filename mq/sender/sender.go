package sender

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
)

const PaymentQueue = "payment_succeeded"

// 已通过签名校验的支付成功事件，消费端据此驱动幂等确认
type PaymentEvent struct {
	IntentId string `json:"intent_id"`
	UserId   uint64 `json:"user_id"`
}

type SenderStruct struct {
	conn *amqp.Connection
}

type Sender interface {
	PublishPaymentSucceeded(ctx context.Context, event PaymentEvent) error
}

func NewSender(conn *amqp.Connection) *SenderStruct {
	return &SenderStruct{conn: conn}
}

func (s *SenderStruct) PublishPaymentSucceeded(ctx context.Context, event PaymentEvent) error {
	ch, err := s.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		PaymentQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx,
		"",
		q.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
