package chatclient

import (
	"context"
	"sync"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
)

// TokenSource 提供本機保存的登入 token；沒有 token 時回傳空字串
type TokenSource interface {
	Token() string
}

// Alerter 送出失敗（message_error）時的阻斷式提示，由 UI 端實作
type Alerter interface {
	Alert(errMsg string)
}

// Transport websocket 連線層抽象，正式環境用 ConnManager
type Transport interface {
	Connect(authToken string)
	Disconnect()
	IsConnected() bool
	Send(receiverID, content string)
	OnMessage(h MessageHandler) *Subscription
	OnMessageSent(h MessageHandler) *Subscription
	OnMessageError(h ErrorHandler) *Subscription
	RemoveAllListeners()
}

// Client 聊天客戶端的組裝點：把連線層事件接到快取、未讀聚合與最近對話。
// 一個登入身分一個 Client，元件全部由外部注入方便測試。
type Client struct {
	selfID   string
	conn     Transport
	cache    *MessageCache
	recent   *RecentCache
	notifier *Notifier
	alerter  Alerter
	tokens   TokenSource

	mu      sync.Mutex
	session *ChatSession
	subs    []*Subscription
}

// NewClient create Client 並掛上連線層事件
func NewClient(
	selfID string,
	conn Transport,
	cache *MessageCache,
	recent *RecentCache,
	notifier *Notifier,
	alerter Alerter,
	tokens TokenSource,
) *Client {
	c := &Client{
		selfID:   selfID,
		conn:     conn,
		cache:    cache,
		recent:   recent,
		notifier: notifier,
		alerter:  alerter,
		tokens:   tokens,
	}
	c.subs = append(c.subs,
		conn.OnMessage(c.handleInbound),
		conn.OnMessageSent(c.handleSent),
		conn.OnMessageError(c.handleSendError),
	)
	return c
}

// Connect 建立 websocket 連線；沒有 token 時不嘗試
func (c *Client) Connect() {
	c.conn.Connect(c.tokens.Token())
}

// IsConnected 回傳連線層目前是否可用
func (c *Client) IsConnected() bool {
	return c.conn.IsConnected()
}

// OpenChat 開啟與 counterpartID 的對話視窗。
// 已有開啟中的視窗會先關閉（同時只允許一個 active chat）。
func (c *Client) OpenChat(ctx context.Context, counterpartID string) *ChatSession {
	c.mu.Lock()
	prev := c.session
	c.mu.Unlock()
	if prev != nil {
		prev.Close()
	}

	s := &ChatSession{
		client:        c,
		counterpartID: counterpartID,
		state:         SessionLoading,
	}
	s.unsub = c.cache.Subscribe(counterpartID, s.publish)

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	c.notifier.SetActiveChat(counterpartID)
	// 對方的未讀在開啟視窗當下視為已讀
	c.notifier.MarkRead(counterpartID)

	c.Connect()
	c.cache.LoadHistory(ctx, counterpartID, false)

	s.mu.Lock()
	if s.state == SessionLoading {
		s.state = SessionReady
	}
	s.mu.Unlock()
	return s
}

// ActiveSession 回傳目前開啟中的對話視窗，沒有則 nil
func (c *Client) ActiveSession() *ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// RecentConversations 取得最近對話列表（TTL 快取優先）
func (c *Client) RecentConversations(ctx context.Context) []domain.RecentConversation {
	return c.recent.Load(ctx)
}

// Notifier 未讀聚合元件，UI 讀 badge 與提示列表用
func (c *Client) Notifier() *Notifier {
	return c.notifier
}

// Cache 訊息快取元件
func (c *Client) Cache() *MessageCache {
	return c.cache
}

// Close 登出或整體卸載：關閉視窗、卸除事件、斷線並清空快取
func (c *Client) Close() {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()
	if session != nil {
		session.Close()
	}

	for _, sub := range c.subs {
		sub.Cancel()
	}
	c.conn.RemoveAllListeners()
	c.conn.Disconnect()
	c.cache.ClearAll()
	c.recent.Invalidate()
	c.notifier.MarkAllRead()
}

// handleInbound 收到別人傳來的訊息
func (c *Client) handleInbound(msg domain.DirectMessage) {
	counterpartID := msg.Sender.ID
	c.recent.Invalidate()

	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session != nil && session.CounterpartID() == counterpartID {
		// 視窗開著：直接進列表，未讀不累積
		c.cache.Append(counterpartID, msg)
	} else {
		c.notifier.Add(msg)
	}
	c.notifier.Toast(msg)
}

// handleSent 自己送出的訊息拿到 server 確認
func (c *Client) handleSent(msg domain.DirectMessage) {
	c.recent.Invalidate()
	c.cache.Append(msg.Receiver.ID, msg)
}

// handleSendError 送出失敗，交給 UI 彈提示
func (c *Client) handleSendError(errMsg string) {
	logger.Log.Warn("chatclient send rejected: " + errMsg)
	if c.alerter != nil {
		c.alerter.Alert(errMsg)
	}
}

// sessionClosed 視窗關閉時的回呼，只清掉仍指向自己的標記
func (c *Client) sessionClosed(s *ChatSession) {
	c.mu.Lock()
	if c.session == s {
		c.session = nil
	}
	c.mu.Unlock()

	if c.notifier.ActiveChat() == s.counterpartID {
		c.notifier.ClearActiveChat()
	}
}
