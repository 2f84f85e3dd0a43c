package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"vksolaris/enum"
	"vksolaris/model"
	"vksolaris/payment"
	"vksolaris/repository"
	"vksolaris/utils"
)

// 返回给客户端的支付会话和价格明细
type PurchaseSession struct {
	ClientSecret       string `json:"client_secret"`
	Amount             int64  `json:"amount"`
	OriginalAmount     int64  `json:"original_amount"`
	DiscountPercentage int    `json:"discount_percentage"`
	DiscountAmount     int64  `json:"discount_amount"`
	Currency           string `json:"currency"`
}

// 价格明细，单位元
type Pricing struct {
	OriginalPrice      float64 `json:"original_price"`
	DiscountPercentage int     `json:"discount_percentage"`
	DiscountAmount     float64 `json:"discount_amount"`
	FinalPrice         float64 `json:"final_price"`
	Currency           string  `json:"currency"`
}

type PurchaseService struct {
	UserRepo   repository.UserRepoInterface
	TicketRepo repository.TicketRepoInterface
	Provider   payment.Provider
	BasePrice  func() int64  // 基础票价由配置注入
	Currency   func() string // 默认币种
	Now        func() time.Time
}

type PurchaseSrv interface {
	SeasonYear() int
	CanPurchase(ctx context.Context, user *model.User, seasonYear int) (bool, enum.DenyReason, error)
	Pricing(ctx context.Context, user *model.User) (*Pricing, error)
	BeginPurchase(ctx context.Context, user *model.User, currency string) (*PurchaseSession, error)
	ConfirmPurchase(ctx context.Context, userId uint64, intentId string) (*model.SeasonTicket, error)
}

func (s *PurchaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// 当前赛季即当前年份
func (s *PurchaseService) SeasonYear() int {
	return s.now().Year()
}

// 购票资格：账号已确认且当前赛季未持票
// 该检查仅为快速路径，支付完成后确认时会再查一次
func (s *PurchaseService) CanPurchase(ctx context.Context, user *model.User, seasonYear int) (bool, enum.DenyReason, error) {
	if user.Status != enum.UserStatusConfirmed {
		return false, enum.DenyAccountNotConfirmed, nil
	}
	exist, err := s.TicketRepo.ExistByUserAndYear(ctx, user.UserId, seasonYear)
	if err != nil {
		return false, "", err
	}
	if exist {
		return false, enum.DenyTicketAlreadyExists, nil
	}
	return true, "", nil
}

func (s *PurchaseService) Pricing(ctx context.Context, user *model.User) (*Pricing, error) {
	base := s.BasePrice()
	final, discount, err := ComputeCharge(base, user.DiscountPercentage)
	if err != nil {
		return nil, err
	}
	return &Pricing{
		OriginalPrice:      utils.CentsToAmount(base),
		DiscountPercentage: user.DiscountPercentage,
		DiscountAmount:     utils.CentsToAmount(discount),
		FinalPrice:         utils.CentsToAmount(final),
		Currency:           s.Currency(),
	}, nil
}

// 开启购票：资格校验 -> 懒创建支付客户 -> 计算折后价 -> 创建支付会话
func (s *PurchaseService) BeginPurchase(ctx context.Context, user *model.User, currency string) (*PurchaseSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seasonYear := s.SeasonYear()

	allowed, reason, err := s.CanPurchase(ctx, user, seasonYear)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &DenyError{Reason: reason}
	}

	// Stripe客户引用只建一次，创建成功先落库再往下走
	customerId := user.StripeCustomerId
	if customerId == "" {
		customerId, err = s.Provider.CreateCustomer(ctx, user)
		if err != nil {
			return nil, err
		}
		if err := s.UserRepo.SetStripeCustomerId(ctx, user.UserId, customerId); err != nil {
			return nil, err
		}
	}

	base := s.BasePrice()
	final, discount, err := ComputeCharge(base, user.DiscountPercentage)
	if err != nil {
		return nil, err
	}

	if currency != "usd" && currency != "eur" {
		currency = s.Currency()
	}

	meta := payment.Metadata{
		UserId:             user.UserId,
		SeasonYear:         seasonYear,
		OriginalAmount:     base,
		DiscountPercentage: user.DiscountPercentage,
		DiscountAmount:     discount,
	}
	description := fmt.Sprintf("Solaris Waterpolo Club - Season Ticket %d", seasonYear)
	session, err := s.Provider.CreateSession(ctx, final, currency, customerId, meta, description)
	if err != nil {
		return nil, err
	}

	return &PurchaseSession{
		ClientSecret:       session.ClientSecret,
		Amount:             final,
		OriginalAmount:     base,
		DiscountPercentage: user.DiscountPercentage,
		DiscountAmount:     discount,
		Currency:           currency,
	}, nil
}

// 确认购票，客户端确认和webhook回调都走这一个入口，按支付会话引用幂等
// 校验顺序：归属 -> 支付状态 -> 重复出票，通过后事务内出票并更新用户权益
func (s *PurchaseService) ConfirmPurchase(ctx context.Context, userId uint64, intentId string) (*model.SeasonTicket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session, err := s.Provider.RetrieveSession(ctx, intentId)
	if err != nil {
		return nil, err
	}
	// 归属校验在支付状态之前，冒认他人会话无论支付与否一律拒绝
	if session.Metadata.UserId != userId {
		// 可能是攻击行为，记录日志
		log.Printf("购票确认归属不匹配: intent=%s 归属用户=%d 请求用户=%d", intentId, session.Metadata.UserId, userId)
		return nil, &DenyError{Reason: enum.DenyOwnershipMismatch}
	}
	if session.Status != payment.StatusSucceeded {
		return nil, &DenyError{Reason: enum.DenyPaymentNotCompleted}
	}

	seasonYear := session.Metadata.SeasonYear
	exist, err := s.TicketRepo.ExistByUserAndYear(ctx, userId, seasonYear)
	if err != nil {
		return nil, err
	}
	if exist {
		return s.resolveExisting(ctx, userId, intentId)
	}

	ticket := &model.SeasonTicket{
		TicketId:        utils.GetTicketId(),
		UserId:          userId,
		SeasonYear:      seasonYear,
		AmountPaid:      utils.CentsToAmount(session.Amount),
		PaymentIntentId: intentId,
		TicketType:      enum.TicketTypeRegular,
		IsActive:        true,
		PurchaseTime:    s.now(),
	}
	if err := s.TicketRepo.CreateWithEntitlement(ctx, ticket); err != nil {
		// 唯一索引冲突说明并发确认输掉了竞争，由已落库的票裁决
		if repository.IsDuplicateKey(err) {
			return s.resolveExisting(ctx, userId, intentId)
		}
		return nil, err
	}
	return ticket, nil
}

// 本赛季已有票：同一支付会话的重放返回已出的票，否则按重复出票拒绝
func (s *PurchaseService) resolveExisting(ctx context.Context, userId uint64, intentId string) (*model.SeasonTicket, error) {
	ticket, err := s.TicketRepo.GetByPaymentIntentId(ctx, intentId)
	if err != nil {
		return nil, err
	}
	if ticket != nil && ticket.UserId == userId {
		return ticket, nil
	}
	return nil, &DenyError{Reason: enum.DenyTicketAlreadyExists}
}
