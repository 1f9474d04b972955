package app

import (
	"context"
	"testing"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/internal/chat/repository"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 測試 MessageUseCase.Send
func TestMessageUseCase_Send(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	sender := domain.UserRef{ID: uuid.New().String(), Username: "dani"}
	receiver := domain.UserRef{ID: uuid.New().String(), Username: "yossi"}

	mockMsgRepo := new(MockMessageRepository)
	mockPubSub := new(MockPubSub)
	mockDirectory := new(MockUserDirectory)

	mockDirectory.On("Resolve", ctx, receiver.ID).Return(receiver, nil)
	mockMsgRepo.On("InsertMessage", ctx, mock.Anything).Return(nil)
	mockPubSub.On("Publish", repository.UserChannel(receiver.ID), mock.Anything).Return(nil)

	uc := NewMessageUseCase(mockMsgRepo, mockPubSub, mockDirectory, nil)
	sent, err := uc.Send(ctx, sender, receiver.ID, "We won the derby!")

	assert.NoError(t, err)
	assert.NotEmpty(t, sent.ID)
	assert.Equal(t, sender, sent.Sender)
	assert.Equal(t, receiver, sent.Receiver)
	assert.WithinDuration(t, time.Now().UTC(), sent.CreatedAt, time.Minute)

	mockMsgRepo.AssertExpectations(t)
	mockPubSub.AssertExpectations(t)
	mockDirectory.AssertExpectations(t)
}

// 空白內容不應該進到 repo
func TestMessageUseCase_SendBlankContent(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockMsgRepo := new(MockMessageRepository)
	uc := NewMessageUseCase(mockMsgRepo, nil, new(MockUserDirectory), nil)

	_, err := uc.Send(ctx, domain.UserRef{ID: "u1"}, "u2", "   \t  ")

	assert.Error(t, err)
	mockMsgRepo.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything)
}

// 接收方不存在
func TestMessageUseCase_SendUnknownReceiver(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockMsgRepo := new(MockMessageRepository)
	mockDirectory := new(MockUserDirectory)
	mockDirectory.On("Resolve", ctx, "ghost").Return(domain.UserRef{}, assert.AnError)

	uc := NewMessageUseCase(mockMsgRepo, nil, mockDirectory, nil)
	_, err := uc.Send(ctx, domain.UserRef{ID: "u1"}, "ghost", "hello?")

	assert.Error(t, err)
	mockMsgRepo.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything)
}

// 測試 History
func TestMessageUseCase_History(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	userID := uuid.New().String()
	counterpartID := uuid.New().String()

	mockMsgRepo := new(MockMessageRepository)

	expected := []domain.DirectMessage{
		{ID: "m1", Content: "hey", CreatedAt: time.Now().Add(-time.Hour)},
		{ID: "m2", Content: "what's up", CreatedAt: time.Now()},
	}
	mockMsgRepo.On("FindConversation", ctx, userID, counterpartID, int64(0)).Return(expected, nil)

	uc := &MessageUseCase{msgRepo: mockMsgRepo}
	result, err := uc.History(ctx, userID, counterpartID)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockMsgRepo.AssertExpectations(t)
}

// 測試 Recent
func TestMessageUseCase_Recent(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	userID := uuid.New().String()

	mockMsgRepo := new(MockMessageRepository)

	expected := []domain.RecentConversation{
		{Counterpart: domain.UserRef{ID: "u2", Username: "maya"}, LastMessage: "see you there"},
		{Counterpart: domain.UserRef{ID: "u3", Username: "amit"}, LastMessage: "tickets?"},
	}
	mockMsgRepo.On("FindRecentConversations", ctx, userID, domain.RecentConversationLimit).Return(expected, nil)

	uc := &MessageUseCase{msgRepo: mockMsgRepo}
	result, err := uc.Recent(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockMsgRepo.AssertExpectations(t)
}
