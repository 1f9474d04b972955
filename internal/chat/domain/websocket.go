package domain

// Action websocket request action
type Action string

const (
	// SendMessage websocket action send_message (client -> server)
	SendMessage Action = "send_message"

	// ReceiveMessage websocket action receive_message (server -> receiver)
	ReceiveMessage Action = "receive_message"
	// MessageSent websocket action message_sent，送出訊息的 server 確認 (server -> sender)
	MessageSent Action = "message_sent"
	// MessageError websocket action message_error (server -> sender)
	MessageError Action = "message_error"
)

// WSRequest websocket Request
type WSRequest struct {
	Action     string `json:"action"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// WSEvent websocket server 推播事件
type WSEvent struct {
	Action  string         `json:"action"`
	Success bool           `json:"success"`
	Message *DirectMessage `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// HistoryResult message-history fetch 協作者回傳
type HistoryResult struct {
	Success  bool            `json:"success"`
	Messages []DirectMessage `json:"messages"`
}

// RecentResult recent-chats fetch 協作者回傳
type RecentResult struct {
	Success       bool                 `json:"success"`
	Conversations []RecentConversation `json:"conversations"`
}
