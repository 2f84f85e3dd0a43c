package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vksolaris/config"
	"vksolaris/enum"
	"vksolaris/mq/sender"
	"vksolaris/payment"
	"vksolaris/service"
)

type PurchaseHandler struct {
	PurchaseService service.PurchaseSrv
	Sender          sender.Sender
}

type createIntentRequest struct {
	Currency string `json:"currency" binding:"omitempty,oneof=usd eur"`
}

type confirmRequest struct {
	PaymentIntentId string `json:"payment_intent_id" binding:"required"`
}

// 创建支付会话，返回client secret和价格明细
func (h *PurchaseHandler) CreatePaymentIntentHandler(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Validation failed: "+err.Error())
		return
	}

	user := currentUser(c)
	session, err := h.PurchaseService.BeginPurchase(c.Request.Context(), user, req.Currency)
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, session)
}

// 客户端支付完成后的确认入口，按支付会话引用幂等
func (h *PurchaseHandler) ConfirmPaymentHandler(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Validation failed: "+err.Error())
		return
	}

	user := currentUser(c)
	ticket, err := h.PurchaseService.ConfirmPurchase(c.Request.Context(), user.UserId, req.PaymentIntentId)
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, ticketEntity(*ticket))
}

func (h *PurchaseHandler) PricingHandler(c *gin.Context) {
	user := currentUser(c)
	pricing, err := h.PurchaseService.Pricing(c.Request.Context(), user)
	if err != nil {
		failFromError(c, err)
		return
	}

	ok(c, pricing)
}

// Stripe回调：校验签名后把支付成功事件丢进队列，由消费者驱动确认
func (h *PurchaseHandler) WebhookHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Failed to read webhook payload")
		return
	}

	event, err := payment.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"), config.StripeWebhookSecret())
	if err != nil {
		log.Printf("webhook签名校验失败: %v", err)
		fail(c, http.StatusBadRequest, enum.OperateBadRequest, "Webhook signature verification failed")
		return
	}

	switch event.Type {
	case payment.EventPaymentSucceeded:
		if h.Sender != nil {
			err := h.Sender.PublishPaymentSucceeded(c.Request.Context(), sender.PaymentEvent{
				IntentId: event.IntentId,
				UserId:   event.Metadata.UserId,
			})
			if err != nil {
				log.Printf("支付事件入队失败: intent=%s err=%v", event.IntentId, err)
			}
		}
	case payment.EventPaymentFailed:
		log.Printf("支付失败: intent=%s", event.IntentId)
	default:
		log.Printf("忽略的webhook事件类型: %s", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
