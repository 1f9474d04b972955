package chatclient

import (
	"context"
	"testing"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type clientFixture struct {
	client    *Client
	transport *fakeTransport
	history   *MockHistoryFetcher
	recent    *MockRecentFetcher
	toaster   *recordToaster
	alerter   *recordAlerter
}

func newClientFixture() *clientFixture {
	logger.SetNewNop()
	transport := newFakeTransport()
	history := new(MockHistoryFetcher)
	recent := new(MockRecentFetcher)
	toaster := new(recordToaster)
	alerter := new(recordAlerter)

	client := NewClient(
		"me",
		transport,
		NewMessageCache(history),
		NewRecentCache(recent),
		NewNotifier(toaster),
		alerter,
		StaticTokenSource("token"),
	)
	return &clientFixture{
		client:    client,
		transport: transport,
		history:   history,
		recent:    recent,
		toaster:   toaster,
		alerter:   alerter,
	}
}

// 開著的對話視窗收到對方訊息：直接進列表、不累積未讀、不彈 toast
func TestClient_InboundToActiveChat(t *testing.T) {
	f := newClientFixture()
	f.history.On("FetchHistory", mock.Anything, "alice").
		Return([]domain.DirectMessage{}, nil)

	session := f.client.OpenChat(context.Background(), "alice")
	assert.Equal(t, SessionReady, session.State())

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.transport.emitMessage(msgAt("m1", "alice", "me", "hi", base))

	assert.Len(t, session.Messages(), 1)
	assert.Equal(t, 0, f.client.Notifier().UnreadCount())
	assert.Equal(t, 0, f.toaster.count())
}

// 沒開視窗時收到訊息：進未讀聚合並彈 toast；A,A,B → badge 2
func TestClient_InboundWithoutSession(t *testing.T) {
	f := newClientFixture()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.transport.emitMessage(msgAt("m1", "alice", "me", "one", base))
	f.transport.emitMessage(msgAt("m2", "alice", "me", "two", base.Add(time.Minute)))
	f.transport.emitMessage(msgAt("m3", "bob", "me", "hey", base.Add(2*time.Minute)))

	assert.Equal(t, 2, f.client.Notifier().UnreadCount())
	assert.Equal(t, 3, f.toaster.count())
}

// 自己送出的訊息等 server 確認事件回來才進列表
func TestClient_SentAckAppendsToCache(t *testing.T) {
	f := newClientFixture()
	f.history.On("FetchHistory", mock.Anything, "alice").
		Return([]domain.DirectMessage{}, nil)

	session := f.client.OpenChat(context.Background(), "alice")
	assert.True(t, session.Send("hello"))
	// 還沒收到確認，列表不做樂觀顯示
	assert.Empty(t, session.Messages())

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.transport.emitSent(msgAt("m1", "me", "alice", "hello", base))

	msgs := session.Messages()
	assert.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, [2]string{"alice", "hello"}, f.transport.sent[0])
}

// 空白內容不送出
func TestClient_SendBlankNoop(t *testing.T) {
	f := newClientFixture()
	f.history.On("FetchHistory", mock.Anything, "alice").
		Return([]domain.DirectMessage{}, nil)

	session := f.client.OpenChat(context.Background(), "alice")
	assert.False(t, session.Send("   \n\t"))
	assert.Empty(t, f.transport.sent)
}

// message_error 交給 UI 彈提示
func TestClient_SendErrorAlerts(t *testing.T) {
	f := newClientFixture()
	f.transport.emitError("user not found")
	assert.Equal(t, []string{"user not found"}, f.alerter.alerts)
}

// 開新對話會關掉舊視窗，active chat 標記跟著切換
func TestClient_OpenChatReplacesSession(t *testing.T) {
	f := newClientFixture()
	f.history.On("FetchHistory", mock.Anything, mock.Anything).
		Return([]domain.DirectMessage{}, nil)

	first := f.client.OpenChat(context.Background(), "alice")
	second := f.client.OpenChat(context.Background(), "bob")

	assert.Equal(t, SessionClosed, first.State())
	assert.Equal(t, SessionReady, second.State())
	assert.Equal(t, "bob", f.client.Notifier().ActiveChat())
	assert.Same(t, second, f.client.ActiveSession())
}

// 開啟對話視窗時該寄件者的未讀立即清掉
func TestClient_OpenChatMarksRead(t *testing.T) {
	f := newClientFixture()
	f.history.On("FetchHistory", mock.Anything, "alice").
		Return([]domain.DirectMessage{}, nil)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.transport.emitMessage(msgAt("m1", "alice", "me", "hi", base))
	f.transport.emitMessage(msgAt("m2", "bob", "me", "yo", base))
	assert.Equal(t, 2, f.client.Notifier().UnreadCount())

	f.client.OpenChat(context.Background(), "alice")
	assert.Equal(t, 1, f.client.Notifier().UnreadCount())
}

// 收送訊息讓最近對話快取失效
func TestClient_RecentInvalidatedOnTraffic(t *testing.T) {
	f := newClientFixture()
	f.recent.On("FetchRecent", mock.Anything).Return([]domain.RecentConversation{}, nil)

	f.client.RecentConversations(context.Background())
	f.client.RecentConversations(context.Background())
	f.recent.AssertNumberOfCalls(t, "FetchRecent", 1)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.transport.emitMessage(msgAt("m1", "alice", "me", "hi", base))

	f.client.RecentConversations(context.Background())
	f.recent.AssertNumberOfCalls(t, "FetchRecent", 2)
}

// Close 之後：斷線、快取清空、未讀歸零、不再收事件
func TestClient_Close(t *testing.T) {
	f := newClientFixture()
	f.history.On("FetchHistory", mock.Anything, "alice").
		Return([]domain.DirectMessage{}, nil)

	f.client.OpenChat(context.Background(), "alice")
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.transport.emitMessage(msgAt("m1", "bob", "me", "hi", base))

	f.client.Close()

	assert.False(t, f.transport.IsConnected())
	assert.Equal(t, 0, f.client.Notifier().UnreadCount())
	list, loaded := f.client.Cache().Get("alice")
	assert.Empty(t, list)
	assert.False(t, loaded)

	f.transport.emitMessage(msgAt("m2", "bob", "me", "again", base))
	assert.Equal(t, 0, f.client.Notifier().UnreadCount())
}
