package receiver

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"vksolaris/enum"
	"vksolaris/mq/sender"
	"vksolaris/service"
)

type ReceiverStruct struct {
	conn        *amqp.Connection
	purchaseSrv service.PurchaseSrv
}

type Receiver interface {
	StartPaymentConsumer(ctx context.Context) error
}

func NewReceiver(conn *amqp.Connection, purchaseSrv service.PurchaseSrv) *ReceiverStruct {
	return &ReceiverStruct{
		conn:        conn,
		purchaseSrv: purchaseSrv,
	}
}

// 消费webhook支付成功事件，和客户端确认走同一个幂等入口
func (r *ReceiverStruct) StartPaymentConsumer(ctx context.Context) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		sender.PaymentQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	log.Println("开始监听支付事件队列...")

	for {
		select {
		case <-ctx.Done():
			log.Println("支付事件消费者已停止")
			return nil
		case d := <-msgs:
			var event sender.PaymentEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.Printf("解析支付事件失败: %v", err)
				continue
			}

			_, err := r.purchaseSrv.ConfirmPurchase(ctx, event.UserId, event.IntentId)
			if err != nil {
				// 票已出过说明客户端确认先到了，属于正常重放
				if reason, isDeny := service.AsDenyReason(err); isDeny && reason == enum.DenyTicketAlreadyExists {
					continue
				}
				log.Printf("处理支付事件失败: intent=%s err=%v", event.IntentId, err)
				continue
			}

			log.Printf("支付事件确认出票成功: intent=%s user=%d", event.IntentId, event.UserId)
		}
	}
}
