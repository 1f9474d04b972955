package domain

import "time"

// UserRef 訊息上攜帶的使用者資訊（非裸 ID，前端顯示用）
type UserRef struct {
	ID        string `bson:"id" json:"id"`
	Username  string `bson:"username" json:"username"`
	AvatarURL string `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
}

// DirectMessage 表示一則 1對1 訊息
type DirectMessage struct {
	ID        string    `bson:"id" json:"id"` // server 端 UUID
	Sender    UserRef   `bson:"sender" json:"sender"`
	Receiver  UserRef   `bson:"receiver" json:"receiver"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// RecentConversation 側欄「最近聊天」摘要，server 端已排序並截斷
type RecentConversation struct {
	Counterpart   UserRef   `bson:"counterpart" json:"counterpart"`
	LastMessage   string    `bson:"last_message" json:"last_message"`
	LastMessageAt time.Time `bson:"last_message_at" json:"last_message_at"`
}

// RecentConversationLimit 最近聊天列表上限
const RecentConversationLimit = 10
