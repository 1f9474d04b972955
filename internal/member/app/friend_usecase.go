package app

import (
	"context"
	"errors"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
	"github.com/assafmilner/The-Stand-sub001/internal/member/repository"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"go.uber.org/zap"
)

// FriendUseCase 交友邀請應用服務
type FriendUseCase interface {
	SendRequest(ctx context.Context, requesterID, receiverID string) (*domain.FriendRequest, error)
	Accept(ctx context.Context, receiverID string, requestID int64) error
	Reject(ctx context.Context, receiverID string, requestID int64) error
	ListPending(ctx context.Context, receiverID string) ([]domain.FriendRequest, error)
	ListFriends(ctx context.Context, fanID string) ([]domain.Friend, error)
}

type friendUseCase struct {
	friendRepo repository.FriendRepository
	fanRepo    repository.FanRepository
}

// NewFriendUseCase 建立一個新的 FriendUseCase
func NewFriendUseCase(friendRepo repository.FriendRepository, fanRepo repository.FanRepository) FriendUseCase {
	return &friendUseCase{friendRepo: friendRepo, fanRepo: fanRepo}
}

// SendRequest 送出交友邀請
func (f *friendUseCase) SendRequest(ctx context.Context, requesterID, receiverID string) (*domain.FriendRequest, error) {
	if requesterID == receiverID {
		return nil, errors.New("can't send a friend request to yourself")
	}

	// 對方必須存在
	if _, err := f.fanRepo.FindByFan(ctx, &domain.FanQuery{FanID: &receiverID}); err != nil {
		return nil, errors.New("receiver not found")
	}

	// 兩人之間已有等待中的邀請就不重送
	existing, err := f.friendRepo.FindPendingBetween(ctx, requesterID, receiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("friend request already pending")
	}

	req := domain.FriendRequest{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      domain.FriendRequestPending,
	}
	if err := f.friendRepo.CreateRequest(ctx, &req); err != nil {
		return nil, err
	}

	logger.Log.Info("friend request sent",
		zap.String("requester", requesterID), zap.String("receiver", receiverID))
	return &req, nil
}

// Accept 接受邀請，只有收件人可以操作
func (f *friendUseCase) Accept(ctx context.Context, receiverID string, requestID int64) error {
	return f.respond(ctx, receiverID, requestID, domain.FriendRequestAccepted)
}

// Reject 拒絕邀請，只有收件人可以操作
func (f *friendUseCase) Reject(ctx context.Context, receiverID string, requestID int64) error {
	return f.respond(ctx, receiverID, requestID, domain.FriendRequestRejected)
}

func (f *friendUseCase) respond(ctx context.Context, receiverID string, requestID int64, status domain.FriendRequestStatus) error {
	req, err := f.friendRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ReceiverID != receiverID {
		return errors.New("only the receiver can respond to this request")
	}
	if req.Status != domain.FriendRequestPending {
		return errors.New("friend request already responded")
	}
	return f.friendRepo.UpdateStatus(ctx, requestID, status)
}

// ListPending 列出等待回覆的邀請
func (f *friendUseCase) ListPending(ctx context.Context, receiverID string) ([]domain.FriendRequest, error) {
	return f.friendRepo.ListPendingFor(ctx, receiverID)
}

// ListFriends 列出好友
func (f *friendUseCase) ListFriends(ctx context.Context, fanID string) ([]domain.Friend, error) {
	return f.friendRepo.ListFriends(ctx, fanID)
}
