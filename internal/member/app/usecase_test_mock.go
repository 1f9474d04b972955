package app

import (
	"context"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/mock"
)

// MockFanRepo Mock FanRepository
type MockFanRepo struct {
	mock.Mock
}

func (m *MockFanRepo) CreateFan(ctx context.Context, fan *domain.Fan) error {
	args := m.Called(ctx, fan)
	return args.Error(0)
}

func (m *MockFanRepo) FindByFan(ctx context.Context, fanQuery *domain.FanQuery) (*domain.Fan, error) {
	args := m.Called(ctx, fanQuery)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Fan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFanRepo) UpdateProfile(ctx context.Context, fanID string, update *domain.ProfileUpdate) error {
	args := m.Called(ctx, fanID, update)
	return args.Error(0)
}

func (m *MockFanRepo) UpdateAvatar(ctx context.Context, fanID, avatarURL string) error {
	args := m.Called(ctx, fanID, avatarURL)
	return args.Error(0)
}

// MockRedisRepo 針對 FanSession 的 Mock
type MockRedisRepo struct {
	mock.Mock
}

// Set 模擬 Redis Set 操作
func (m *MockRedisRepo) Set(ctx context.Context, key string, value domain.FanSession, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Get 模擬 Redis Get 操作
func (m *MockRedisRepo) Get(ctx context.Context, key string) (domain.FanSession, error) {
	args := m.Called(ctx, key)
	if args.Get(0) != nil {
		return args.Get(0).(domain.FanSession), args.Error(1)
	}
	return domain.FanSession{}, args.Error(1)
}

// Del 模擬 Redis Del 操作
func (m *MockRedisRepo) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// ExtendTTL 模擬 Redis ExtendTTL 操作
func (m *MockRedisRepo) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

// GetTTL 模擬 Redis GetTTL 操作
func (m *MockRedisRepo) GetTTL(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

// MockFriendRepo Mock FriendRepository
type MockFriendRepo struct {
	mock.Mock
}

func (m *MockFriendRepo) CreateRequest(ctx context.Context, req *domain.FriendRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockFriendRepo) FindRequestByID(ctx context.Context, id int64) (*domain.FriendRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFriendRepo) FindPendingBetween(ctx context.Context, requesterID, receiverID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, requesterID, receiverID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFriendRepo) UpdateStatus(ctx context.Context, id int64, status domain.FriendRequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockFriendRepo) ListPendingFor(ctx context.Context, receiverID string) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFriendRepo) ListFriends(ctx context.Context, fanID string) ([]domain.Friend, error) {
	args := m.Called(ctx, fanID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Friend), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTicketRepo Mock TicketRepository
type MockTicketRepo struct {
	mock.Mock
}

func (m *MockTicketRepo) CreateTicket(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) FindByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketRepo) ListAvailable(ctx context.Context) ([]domain.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketRepo) DecrementQuantity(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockRabbit Mock RabbitRepo
type MockRabbit struct {
	mock.Mock
}

func (m *MockRabbit) GetRabbit() *amqp.Channel {
	return nil
}

func (m *MockRabbit) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}
