package app

import (
	"context"
	"errors"
	"testing"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFriendUseCase_SendRequest(t *testing.T) {
	ctx := context.Background()
	requester := "AAA"
	receiver := "BBB"

	logger.SetNewNop()

	t.Run("成功送出邀請", func(t *testing.T) {
		mockFriend := new(MockFriendRepo)
		mockFan := new(MockFanRepo)

		mockFan.On("FindByFan", ctx, &domain.FanQuery{FanID: &receiver}).
			Return(&domain.Fan{FanID: receiver}, nil).Once()
		mockFriend.On("FindPendingBetween", ctx, requester, receiver).
			Return(nil, nil).Once()
		mockFriend.On("CreateRequest", ctx, mock.Anything).Return(nil).Once()

		uc := NewFriendUseCase(mockFriend, mockFan)
		req, err := uc.SendRequest(ctx, requester, receiver)

		assert.NoError(t, err)
		assert.Equal(t, requester, req.RequesterID)
		assert.Equal(t, domain.FriendRequestPending, req.Status)
		mockFriend.AssertExpectations(t)
		mockFan.AssertExpectations(t)
	})

	// 不能邀請自己
	t.Run("不能邀請自己", func(t *testing.T) {
		uc := NewFriendUseCase(new(MockFriendRepo), new(MockFanRepo))
		_, err := uc.SendRequest(ctx, requester, requester)

		assert.Error(t, err)
	})

	t.Run("對方不存在", func(t *testing.T) {
		mockFriend := new(MockFriendRepo)
		mockFan := new(MockFanRepo)

		mockFan.On("FindByFan", ctx, &domain.FanQuery{FanID: &receiver}).
			Return(nil, errors.New("no fan found with given criteria")).Once()

		uc := NewFriendUseCase(mockFriend, mockFan)
		_, err := uc.SendRequest(ctx, requester, receiver)

		assert.Error(t, err)
		assert.Equal(t, "receiver not found", err.Error())
	})

	// 已有等待中的邀請就不重送
	t.Run("邀請已存在", func(t *testing.T) {
		mockFriend := new(MockFriendRepo)
		mockFan := new(MockFanRepo)

		mockFan.On("FindByFan", ctx, &domain.FanQuery{FanID: &receiver}).
			Return(&domain.Fan{FanID: receiver}, nil).Once()
		mockFriend.On("FindPendingBetween", ctx, requester, receiver).
			Return(&domain.FriendRequest{ID: 9, Status: domain.FriendRequestPending}, nil).Once()

		uc := NewFriendUseCase(mockFriend, mockFan)
		_, err := uc.SendRequest(ctx, requester, receiver)

		assert.Error(t, err)
		assert.Equal(t, "friend request already pending", err.Error())
	})
}

func TestFriendUseCase_Respond(t *testing.T) {
	ctx := context.Background()
	receiver := "BBB"

	logger.SetNewNop()

	t.Run("成功接受", func(t *testing.T) {
		mockFriend := new(MockFriendRepo)

		mockFriend.On("FindRequestByID", ctx, int64(7)).
			Return(&domain.FriendRequest{ID: 7, RequesterID: "AAA", ReceiverID: receiver, Status: domain.FriendRequestPending}, nil).Once()
		mockFriend.On("UpdateStatus", ctx, int64(7), domain.FriendRequestAccepted).Return(nil).Once()

		uc := NewFriendUseCase(mockFriend, new(MockFanRepo))
		err := uc.Accept(ctx, receiver, 7)

		assert.NoError(t, err)
		mockFriend.AssertExpectations(t)
	})

	// 只有收件人能回覆
	t.Run("非收件人不能回覆", func(t *testing.T) {
		mockFriend := new(MockFriendRepo)

		mockFriend.On("FindRequestByID", ctx, int64(7)).
			Return(&domain.FriendRequest{ID: 7, RequesterID: "AAA", ReceiverID: receiver, Status: domain.FriendRequestPending}, nil).Once()

		uc := NewFriendUseCase(mockFriend, new(MockFanRepo))
		err := uc.Reject(ctx, "CCC", 7)

		assert.Error(t, err)
	})

	t.Run("已回覆過的邀請", func(t *testing.T) {
		mockFriend := new(MockFriendRepo)

		mockFriend.On("FindRequestByID", ctx, int64(7)).
			Return(&domain.FriendRequest{ID: 7, ReceiverID: receiver, Status: domain.FriendRequestAccepted}, nil).Once()

		uc := NewFriendUseCase(mockFriend, new(MockFanRepo))
		err := uc.Accept(ctx, receiver, 7)

		assert.Error(t, err)
		assert.Equal(t, "friend request already responded", err.Error())
	})
}
