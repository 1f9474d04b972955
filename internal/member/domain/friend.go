package domain

import "time"

// FriendRequestStatus 交友邀請狀態
type FriendRequestStatus string

const (
	// FriendRequestPending 等待回覆
	FriendRequestPending FriendRequestStatus = "pending"
	// FriendRequestAccepted 已接受
	FriendRequestAccepted FriendRequestStatus = "accepted"
	// FriendRequestRejected 已拒絕
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest 交友邀請
type FriendRequest struct {
	ID          int64
	RequesterID string
	ReceiverID  string
	Status      FriendRequestStatus
	CreatedAt   time.Time
	RespondedAt *time.Time
}

// Friend 好友列表項目（已接受的另一方）
type Friend struct {
	FanID        string `json:"fanId"`
	Username     string `json:"username"`
	AvatarURL    string `json:"avatarUrl"`
	FavoriteTeam string `json:"favoriteTeam"`
}
