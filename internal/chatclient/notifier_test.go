package chatclient

import (
	"testing"
	"time"

	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/stretchr/testify/assert"
)

// 同一寄件者多筆訊息只佔一個未讀 entry，內容覆蓋為最新
func TestNotifier_CoalescePerSender(t *testing.T) {
	logger.SetNewNop()
	n := NewNotifier(nil)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	n.Add(msgAt("m1", "alice", "me", "first", base))
	n.Add(msgAt("m2", "alice", "me", "second", base.Add(time.Minute)))
	n.Add(msgAt("m3", "bob", "me", "hey", base.Add(2*time.Minute)))

	// A 傳兩則、B 傳一則 → badge 顯示 2
	assert.Equal(t, 2, n.UnreadCount())

	list := n.Notifications()
	assert.Equal(t, "alice", list[0].SenderID)
	assert.Equal(t, "second", list[0].Content)
	assert.Equal(t, "bob", list[1].SenderID)
}

// 寄件者是開啟中的對話時不記未讀
func TestNotifier_ActiveChatSuppression(t *testing.T) {
	logger.SetNewNop()
	n := NewNotifier(nil)
	n.SetActiveChat("alice")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	added := n.Add(msgAt("m1", "alice", "me", "hi", base))

	assert.False(t, added)
	assert.Equal(t, 0, n.UnreadCount())

	// 其他寄件者照常累積
	assert.True(t, n.Add(msgAt("m2", "bob", "me", "yo", base)))
	assert.Equal(t, 1, n.UnreadCount())
}

// MarkRead 只移除指定寄件者的 entry
func TestNotifier_MarkRead(t *testing.T) {
	logger.SetNewNop()
	n := NewNotifier(nil)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	n.Add(msgAt("m1", "alice", "me", "hi", base))
	n.Add(msgAt("m2", "bob", "me", "yo", base))

	n.MarkRead("alice")
	assert.Equal(t, 1, n.UnreadCount())
	assert.Equal(t, "bob", n.Notifications()[0].SenderID)

	// 不存在的寄件者 no-op
	n.MarkRead("carol")
	assert.Equal(t, 1, n.UnreadCount())

	n.MarkAllRead()
	assert.Equal(t, 0, n.UnreadCount())
}

// toast 在訊息頁與開啟中的對話被抑制，其它情況照常彈出
func TestNotifier_ToastSuppression(t *testing.T) {
	logger.SetNewNop()
	toaster := new(recordToaster)
	n := NewNotifier(toaster)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	n.Toast(msgAt("m1", "alice", "me", "hi", base))
	assert.Equal(t, 1, toaster.count())

	n.SetActiveChat("alice")
	n.Toast(msgAt("m2", "alice", "me", "again", base))
	assert.Equal(t, 1, toaster.count())

	n.ClearActiveChat()
	n.SetOnMessagesPage(true)
	n.Toast(msgAt("m3", "bob", "me", "yo", base))
	assert.Equal(t, 1, toaster.count())

	n.SetOnMessagesPage(false)
	n.Toast(msgAt("m4", "bob", "me", "yo", base))
	assert.Equal(t, 2, toaster.count())
}
