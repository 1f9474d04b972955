package chatclient

import (
	"sync"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
)

// MessageNotification 未讀提示項目，同一個寄件者只保留最新一筆
type MessageNotification struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"senderId"`
	SenderName   string    `json:"senderName"`
	SenderAvatar string    `json:"senderAvatar"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
}

// Toaster 短暫彈出提示的呈現介面，由 UI 端實作
type Toaster interface {
	ShowToast(n MessageNotification)
}

// Notifier 未讀訊息聚合。
// 每個寄件者在列表中最多一個 entry（新訊息覆蓋舊內容），
// 未讀數量直接是 entry 個數，不另外維護計數器。
type Notifier struct {
	toaster Toaster

	mu             sync.Mutex
	entries        []MessageNotification
	activeChat     string
	onMessagesPage bool
}

// NewNotifier create Notifier，toaster 允許為 nil（headless 場景）
func NewNotifier(toaster Toaster) *Notifier {
	return &Notifier{toaster: toaster}
}

// SetActiveChat 標記目前開啟中的對話對象
func (n *Notifier) SetActiveChat(counterpartID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.activeChat = counterpartID
}

// ClearActiveChat 清除開啟中對話的標記
func (n *Notifier) ClearActiveChat() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.activeChat = ""
}

// ActiveChat 回傳目前開啟中的對話對象 ID，沒有則空字串
func (n *Notifier) ActiveChat() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.activeChat
}

// SetOnMessagesPage 標記使用者是否在訊息總覽頁（該頁不彈 toast）
func (n *Notifier) SetOnMessagesPage(on bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onMessagesPage = on
}

// Add 收到訊息時記入未讀。
// 寄件者是目前開啟中的對話時直接丟棄（視為已讀），回傳 false。
// 同一寄件者已有 entry 時就地覆蓋內容，列表順序不變。
func (n *Notifier) Add(msg domain.DirectMessage) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if msg.Sender.ID == n.activeChat && n.activeChat != "" {
		return false
	}

	entry := MessageNotification{
		ID:           msg.ID,
		SenderID:     msg.Sender.ID,
		SenderName:   msg.Sender.Username,
		SenderAvatar: msg.Sender.AvatarURL,
		Content:      msg.Content,
		Timestamp:    msg.CreatedAt,
	}

	for i := range n.entries {
		if n.entries[i].SenderID == entry.SenderID {
			n.entries[i] = entry
			return true
		}
	}
	n.entries = append(n.entries, entry)
	return true
}

// Toast 彈出提示；寄件者是開啟中的對話或人在訊息頁時不彈
func (n *Notifier) Toast(msg domain.DirectMessage) {
	n.mu.Lock()
	suppressed := n.onMessagesPage || (n.activeChat != "" && msg.Sender.ID == n.activeChat)
	toaster := n.toaster
	n.mu.Unlock()

	if suppressed || toaster == nil {
		return
	}
	toaster.ShowToast(MessageNotification{
		ID:           msg.ID,
		SenderID:     msg.Sender.ID,
		SenderName:   msg.Sender.Username,
		SenderAvatar: msg.Sender.AvatarURL,
		Content:      msg.Content,
		Timestamp:    msg.CreatedAt,
	})
}

// MarkRead 移除指定寄件者的未讀 entry；不存在時 no-op
func (n *Notifier) MarkRead(senderID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.entries {
		if n.entries[i].SenderID == senderID {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
			return
		}
	}
}

// MarkAllRead 清空全部未讀
func (n *Notifier) MarkAllRead() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = nil
}

// UnreadCount 未讀寄件者數量（badge 顯示用）
func (n *Notifier) UnreadCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}

// Notifications 回傳未讀列表副本（依首次出現順序）
func (n *Notifier) Notifications() []MessageNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]MessageNotification, len(n.entries))
	copy(out, n.entries)
	return out
}
