package app

import (
	"context"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// InsertMessage mock insert msg
func (m *MockMessageRepository) InsertMessage(ctx context.Context, msg *domain.DirectMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindConversation mock find conversation by counterpart
func (m *MockMessageRepository) FindConversation(ctx context.Context, userID, counterpartID string, limit int64) ([]domain.DirectMessage, error) {
	args := m.Called(ctx, userID, counterpartID, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.DirectMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindRecentConversations mock find recent conversations
func (m *MockMessageRepository) FindRecentConversations(ctx context.Context, userID string, limit int) ([]domain.RecentConversation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.RecentConversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPubSub Mock PubSub
type MockPubSub struct {
	mock.Mock
}

// Publish mock publisher
func (m *MockPubSub) Publish(channel string, message interface{}) error {
	args := m.Called(channel, message)
	return args.Error(0)
}

// Subscribe mock subscriber
func (m *MockPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.WSEvent)) error {
	args := m.Called(channel, handler)
	return args.Error(0)
}

// MockUserDirectory Mock UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

// Resolve mock resolve user ref
func (m *MockUserDirectory) Resolve(ctx context.Context, userID string) (domain.UserRef, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserRef), args.Error(1)
}
