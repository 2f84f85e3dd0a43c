package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-sql-driver/mysql"

	"vksolaris/enum"
	"vksolaris/model"
	"vksolaris/payment"
	"vksolaris/query"
)

// 内存版用户仓库
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint64]*model.User
	nextId uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*model.User), nextId: 1}
}

func (f *fakeUserRepo) put(user *model.User) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.UserId == 0 {
		user.UserId = f.nextId
		f.nextId++
	}
	f.users[user.UserId] = user
	return user
}

func (f *fakeUserRepo) List(ctx context.Context, req *query.UserListQuery) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) GetTotal(ctx context.Context, req *query.UserListQuery) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Get(ctx context.Context, userId uint64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userId], nil
}

func (f *fakeUserRepo) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ExistByUserName(ctx context.Context, userName string) (bool, error) {
	u, _ := f.GetByUserName(ctx, userName)
	return u != nil, nil
}

func (f *fakeUserRepo) ExistByEmail(ctx context.Context, email string, excludeUserId uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserId != excludeUserId && u.Email != nil && *u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserName == user.UserName {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		}
	}
	if user.UserId == 0 {
		user.UserId = f.nextId
		f.nextId++
	}
	f.users[user.UserId] = user
	return nil
}

func (f *fakeUserRepo) EditProfile(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if got, ok := f.users[user.UserId]; ok {
		got.FirstName = user.FirstName
		got.LastName = user.LastName
		got.Email = user.Email
	}
	return nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, userId uint64, status enum.UserStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userId]
	if !ok {
		return false, nil
	}
	u.Status = status
	return true, nil
}

func (f *fakeUserRepo) UpdateDiscount(ctx context.Context, userId uint64, discount int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userId]
	if !ok {
		return false, nil
	}
	u.DiscountPercentage = discount
	return true, nil
}

func (f *fakeUserRepo) SetStripeCustomerId(ctx context.Context, userId uint64, customerId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userId]; ok {
		u.StripeCustomerId = customerId
	}
	return nil
}

// 内存版赛季票仓库，按uk_user_season和uk_payment_intent两个唯一索引模拟1062冲突
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets []*model.SeasonTicket
	users   *fakeUserRepo
}

func newFakeTicketRepo(users *fakeUserRepo) *fakeTicketRepo {
	return &fakeTicketRepo{users: users}
}

func (f *fakeTicketRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickets)
}

func (f *fakeTicketRepo) Get(ctx context.Context, ticketId int64) (*model.SeasonTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tickets {
		if t.TicketId == ticketId {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) ListByUser(ctx context.Context, userId uint64) ([]*model.SeasonTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.SeasonTicket
	for _, t := range f.tickets {
		if t.UserId == userId {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) ExistByUserAndYear(ctx context.Context, userId uint64, seasonYear int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tickets {
		if t.UserId == userId && t.SeasonYear == seasonYear {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTicketRepo) GetByPaymentIntentId(ctx context.Context, intentId string) (*model.SeasonTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tickets {
		if t.PaymentIntentId == intentId {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) CreateWithEntitlement(ctx context.Context, ticket *model.SeasonTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tickets {
		if t.UserId == ticket.UserId && t.SeasonYear == ticket.SeasonYear {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'uk_user_season'"}
		}
		if t.PaymentIntentId == ticket.PaymentIntentId {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'uk_payment_intent'"}
		}
	}
	f.tickets = append(f.tickets, ticket)
	if f.users != nil {
		f.users.mu.Lock()
		if u, ok := f.users.users[ticket.UserId]; ok {
			u.HasSeasonTicket = true
			u.SeasonTicketYear = ticket.SeasonYear
		}
		f.users.mu.Unlock()
	}
	return nil
}

func (f *fakeTicketRepo) RecomputeEntitlement(ctx context.Context, userId uint64) error {
	return nil
}

// 内存版支付服务
type fakeProvider struct {
	mu            sync.Mutex
	sessions      map[string]*payment.Session
	customerCalls int
	createErr     error
	nextIntent    int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: make(map[string]*payment.Session)}
}

func (f *fakeProvider) CreateCustomer(ctx context.Context, user *model.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customerCalls++
	return fmt.Sprintf("cus_test_%d", user.UserId), nil
}

func (f *fakeProvider) CreateSession(ctx context.Context, amount int64, currency, customerId string, meta payment.Metadata, description string) (*payment.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextIntent++
	session := &payment.Session{
		IntentId:     fmt.Sprintf("pi_test_%d", f.nextIntent),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", f.nextIntent),
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
		Metadata:     meta,
	}
	f.sessions[session.IntentId] = session
	return session, nil
}

func (f *fakeProvider) RetrieveSession(ctx context.Context, intentId string) (*payment.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[intentId]
	if !ok {
		return nil, fmt.Errorf("%w: no such payment_intent %s", payment.ErrProviderUnavailable, intentId)
	}
	return session, nil
}

// 把支付会话标记为支付成功
func (f *fakeProvider) succeed(intentId string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[intentId].Status = payment.StatusSucceeded
}

func (f *fakeProvider) lastIntentId() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fmt.Sprintf("pi_test_%d", f.nextIntent)
}
