package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vksolaris/enum"
	"vksolaris/model"
	"vksolaris/payment"
)

func newPurchaseService(users *fakeUserRepo, tickets *fakeTicketRepo, provider *fakeProvider) *PurchaseService {
	return &PurchaseService{
		UserRepo:   users,
		TicketRepo: tickets,
		Provider:   provider,
		BasePrice:  func() int64 { return 10000 },
		Currency:   func() string { return "usd" },
		Now:        func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func confirmedUser(users *fakeUserRepo, discount int) *model.User {
	return users.put(&model.User{
		FirstName:          "Luka",
		LastName:           "Horvat",
		UserName:           "luka",
		Status:             enum.UserStatusConfirmed,
		DiscountPercentage: discount,
	})
}

func TestCanPurchase(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	srv := newPurchaseService(users, tickets, newFakeProvider())

	t.Run("待审核账号不能购票", func(t *testing.T) {
		user := users.put(&model.User{UserName: "pending", Status: enum.UserStatusPending})
		ok, reason, err := srv.CanPurchase(ctx, user, srv.SeasonYear())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, enum.DenyAccountNotConfirmed, reason)
	})

	t.Run("停用账号不能购票", func(t *testing.T) {
		user := users.put(&model.User{UserName: "suspended", Status: enum.UserStatusSuspended})
		ok, reason, err := srv.CanPurchase(ctx, user, srv.SeasonYear())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, enum.DenyAccountNotConfirmed, reason)
	})

	t.Run("已确认且无票可购", func(t *testing.T) {
		user := confirmedUser(users, 0)
		ok, reason, err := srv.CanPurchase(ctx, user, srv.SeasonYear())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, reason)
	})

	t.Run("本赛季已持票不能再购", func(t *testing.T) {
		user := confirmedUser(users, 0)
		err := tickets.CreateWithEntitlement(ctx, &model.SeasonTicket{
			TicketId: 1, UserId: user.UserId, SeasonYear: srv.SeasonYear(), PaymentIntentId: "pi_seed",
		})
		require.NoError(t, err)
		ok, reason, err := srv.CanPurchase(ctx, user, srv.SeasonYear())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, enum.DenyTicketAlreadyExists, reason)
	})
}

func TestBeginPurchase(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	provider := newFakeProvider()
	srv := newPurchaseService(users, tickets, provider)
	user := confirmedUser(users, 25)

	session, err := srv.BeginPurchase(ctx, user, "usd")
	require.NoError(t, err)
	assert.Equal(t, int64(7500), session.Amount)
	assert.Equal(t, int64(10000), session.OriginalAmount)
	assert.Equal(t, int64(2500), session.DiscountAmount)
	assert.Equal(t, 25, session.DiscountPercentage)
	assert.Equal(t, "usd", session.Currency)
	assert.NotEmpty(t, session.ClientSecret)

	// 客户引用创建一次就落库复用
	assert.Equal(t, 1, provider.customerCalls)
	stored, _ := users.Get(ctx, user.UserId)
	assert.NotEmpty(t, stored.StripeCustomerId)

	_, err = srv.BeginPurchase(ctx, stored, "usd")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.customerCalls)

	// 会话元数据以发起者为准
	raw, err := provider.RetrieveSession(ctx, provider.lastIntentId())
	require.NoError(t, err)
	assert.Equal(t, user.UserId, raw.Metadata.UserId)
	assert.Equal(t, 2025, raw.Metadata.SeasonYear)
	assert.Equal(t, int64(10000), raw.Metadata.OriginalAmount)
	assert.Equal(t, int64(2500), raw.Metadata.DiscountAmount)
}

func TestBeginPurchaseDenied(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	srv := newPurchaseService(users, tickets, newFakeProvider())
	user := users.put(&model.User{UserName: "pending", Status: enum.UserStatusPending})

	_, err := srv.BeginPurchase(ctx, user, "usd")
	reason, ok := AsDenyReason(err)
	require.True(t, ok)
	assert.Equal(t, enum.DenyAccountNotConfirmed, reason)
}

func TestBeginPurchaseUnknownCurrencyFallsBack(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	srv := newPurchaseService(users, tickets, newFakeProvider())
	user := confirmedUser(users, 0)

	session, err := srv.BeginPurchase(ctx, user, "hrk")
	require.NoError(t, err)
	assert.Equal(t, "usd", session.Currency)
}

func TestConfirmPurchase(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	provider := newFakeProvider()
	srv := newPurchaseService(users, tickets, provider)
	user := confirmedUser(users, 25)

	_, err := srv.BeginPurchase(ctx, user, "usd")
	require.NoError(t, err)
	intentId := provider.lastIntentId()
	provider.succeed(intentId)

	ticket, err := srv.ConfirmPurchase(ctx, user.UserId, intentId)
	require.NoError(t, err)
	assert.Equal(t, user.UserId, ticket.UserId)
	assert.Equal(t, 2025, ticket.SeasonYear)
	assert.Equal(t, 75.0, ticket.AmountPaid)
	assert.Equal(t, intentId, ticket.PaymentIntentId)
	assert.Equal(t, enum.TicketTypeRegular, ticket.TicketType)
	assert.True(t, ticket.IsActive)

	// 出票同时更新用户权益
	stored, _ := users.Get(ctx, user.UserId)
	assert.True(t, stored.HasSeasonTicket)
	assert.Equal(t, 2025, stored.SeasonTicketYear)
}

func TestConfirmPurchaseNotSucceeded(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	provider := newFakeProvider()
	srv := newPurchaseService(users, tickets, provider)
	user := confirmedUser(users, 0)

	_, err := srv.BeginPurchase(ctx, user, "usd")
	require.NoError(t, err)

	_, err = srv.ConfirmPurchase(ctx, user.UserId, provider.lastIntentId())
	reason, ok := AsDenyReason(err)
	require.True(t, ok)
	assert.Equal(t, enum.DenyPaymentNotCompleted, reason)
	assert.Equal(t, 0, tickets.count())
}

// 冒认他人会话无论支付状态如何都按归属不匹配拒绝
func TestConfirmPurchaseOwnershipMismatch(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	provider := newFakeProvider()
	srv := newPurchaseService(users, tickets, provider)
	owner := confirmedUser(users, 0)
	other := confirmedUser(users, 0)

	_, err := srv.BeginPurchase(ctx, owner, "usd")
	require.NoError(t, err)
	intentId := provider.lastIntentId()

	_, err = srv.ConfirmPurchase(ctx, other.UserId, intentId)
	reason, ok := AsDenyReason(err)
	require.True(t, ok)
	assert.Equal(t, enum.DenyOwnershipMismatch, reason)

	provider.succeed(intentId)
	_, err = srv.ConfirmPurchase(ctx, other.UserId, intentId)
	reason, ok = AsDenyReason(err)
	require.True(t, ok)
	assert.Equal(t, enum.DenyOwnershipMismatch, reason)
	assert.Equal(t, 0, tickets.count())
}

// 同一会话重复确认幂等返回首次出的票
func TestConfirmPurchaseReplay(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	provider := newFakeProvider()
	srv := newPurchaseService(users, tickets, provider)
	user := confirmedUser(users, 0)

	_, err := srv.BeginPurchase(ctx, user, "usd")
	require.NoError(t, err)
	intentId := provider.lastIntentId()
	provider.succeed(intentId)

	first, err := srv.ConfirmPurchase(ctx, user.UserId, intentId)
	require.NoError(t, err)

	second, err := srv.ConfirmPurchase(ctx, user.UserId, intentId)
	require.NoError(t, err)
	assert.Equal(t, first.TicketId, second.TicketId)
	assert.Equal(t, 1, tickets.count())
}

// 同赛季用新支付会话再次确认被拒，不产生第二张票
func TestConfirmPurchaseSecondIntentSameSeason(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	provider := newFakeProvider()
	srv := newPurchaseService(users, tickets, provider)
	user := confirmedUser(users, 0)

	_, err := srv.BeginPurchase(ctx, user, "usd")
	require.NoError(t, err)
	firstIntent := provider.lastIntentId()
	provider.succeed(firstIntent)
	_, err = srv.ConfirmPurchase(ctx, user.UserId, firstIntent)
	require.NoError(t, err)

	// 第二个会话绕过资格检查直接造出来，模拟确认前的竞态窗口
	meta := payment.Metadata{UserId: user.UserId, SeasonYear: srv.SeasonYear(), OriginalAmount: 10000}
	session, err := provider.CreateSession(ctx, 10000, "usd", "cus_test_1", meta, "")
	require.NoError(t, err)
	provider.succeed(session.IntentId)

	_, err = srv.ConfirmPurchase(ctx, user.UserId, session.IntentId)
	reason, ok := AsDenyReason(err)
	require.True(t, ok)
	assert.Equal(t, enum.DenyTicketAlreadyExists, reason)
	assert.Equal(t, 1, tickets.count())
}

// 并发确认同一会话只出一张票，所有成功方拿到同一张
func TestConfirmPurchaseConcurrent(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	provider := newFakeProvider()
	srv := newPurchaseService(users, tickets, provider)
	user := confirmedUser(users, 0)

	_, err := srv.BeginPurchase(ctx, user, "usd")
	require.NoError(t, err)
	intentId := provider.lastIntentId()
	provider.succeed(intentId)

	const workers = 16
	results := make([]*model.SeasonTicket, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = srv.ConfirmPurchase(ctx, user.UserId, intentId)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, tickets.count())
	winner, err := tickets.GetByPaymentIntentId(ctx, intentId)
	require.NoError(t, err)
	require.NotNil(t, winner)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i], "worker %d", i)
		assert.Equal(t, winner.TicketId, results[i].TicketId, "worker %d", i)
	}
}

func TestPricing(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	srv := newPurchaseService(users, tickets, newFakeProvider())
	user := confirmedUser(users, 30)

	pricing, err := srv.Pricing(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 100.0, pricing.OriginalPrice)
	assert.Equal(t, 30, pricing.DiscountPercentage)
	assert.Equal(t, 30.0, pricing.DiscountAmount)
	assert.Equal(t, 70.0, pricing.FinalPrice)
	assert.Equal(t, "usd", pricing.Currency)
}
