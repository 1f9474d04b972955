package chatclient

import (
	"encoding/json"
	"sync"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ConnState websocket 連線狀態機
type ConnState int

const (
	// StateDisconnected 未連線（初始、斷線、Disconnect 之後）
	StateDisconnected ConnState = iota
	// StateConnecting 撥號中
	StateConnecting
	// StateConnected 連線可用
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// MessageHandler 收到訊息事件的 callback
type MessageHandler func(msg domain.DirectMessage)

// ErrorHandler 收到 message_error 事件的 callback
type ErrorHandler func(errMsg string)

// Subscription 事件註冊的 handle，Cancel 只移除自己這一個 handler
type Subscription struct {
	cancel func()
	once   sync.Once
}

// Cancel detach handler，可重複呼叫
func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}

// ConnManager 一個登入 session 只有一條邏輯連線。
// 連線失敗不回傳 error（只記 log），呼叫端以 State() 判斷。
type ConnManager struct {
	wsURL string

	mu      sync.Mutex
	state   ConnState
	conn    *websocket.Conn
	done    chan struct{} // read loop 結束時關閉
	writeMu sync.Mutex

	nextSubID int
	msgSubs   map[int]MessageHandler
	ackSubs   map[int]MessageHandler
	errSubs   map[int]ErrorHandler
}

// NewConnManager create ConnManager，wsURL 例如 ws://localhost:8083/ws
func NewConnManager(wsURL string) *ConnManager {
	return &ConnManager{
		wsURL:   wsURL,
		state:   StateDisconnected,
		msgSubs: make(map[int]MessageHandler),
		ackSubs: make(map[int]MessageHandler),
		errSubs: make(map[int]ErrorHandler),
	}
}

// Connect 冪等：已連線（或撥號中）直接返回；token 空值不嘗試連線
func (c *ConnManager) Connect(authToken string) {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return
	}
	if authToken == "" {
		logger.Log.Warn("chatclient connect skipped: no auth token")
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	c.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.Dial(c.wsURL+"?"+middlewares.QueryToken+"="+authToken, nil)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Disconnect 可能在撥號期間被呼叫
	if c.state != StateConnecting {
		if conn != nil {
			conn.Close()
		}
		return
	}

	if err != nil {
		logger.Log.Errorf("chatclient connect error:", err)
		c.state = StateDisconnected
		return
	}

	c.conn = conn
	c.state = StateConnected
	done := make(chan struct{})
	c.done = done
	go c.readLoop(conn, done)
}

// Disconnect 關閉連線並回到 disconnected；重複呼叫安全。
// 會等 read loop 結束才返回，不可在事件 handler 內呼叫。
func (c *ConnManager) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	done := c.done
	c.conn = nil
	c.done = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if done != nil {
		<-done
	}
}

// State 回傳目前連線狀態
func (c *ConnManager) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected 回傳是否連線中
func (c *ConnManager) IsConnected() bool {
	return c.State() == StateConnected
}

// Send fire-and-forget 送出訊息事件；未連線時 no-op
func (c *ConnManager) Send(receiverID, content string) {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.Unlock()

	if !connected || conn == nil {
		logger.Log.Warn("chatclient send dropped: not connected",
			zap.String("receiverID", receiverID))
		return
	}

	req := domain.WSRequest{
		Action:     string(domain.SendMessage),
		ReceiverID: receiverID,
		Content:    content,
	}
	b, _ := json.Marshal(req)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("chatclient write error:", err)
	}
}

// OnMessage 註冊 receive_message handler，允許多個訂閱者
func (c *ConnManager) OnMessage(h MessageHandler) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSubID++
	id := c.nextSubID
	c.msgSubs[id] = h
	return &Subscription{cancel: func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.msgSubs, id)
	}}
}

// OnMessageSent 註冊 message_sent (送出確認) handler
func (c *ConnManager) OnMessageSent(h MessageHandler) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSubID++
	id := c.nextSubID
	c.ackSubs[id] = h
	return &Subscription{cancel: func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.ackSubs, id)
	}}
}

// OnMessageError 註冊 message_error handler
func (c *ConnManager) OnMessageError(h ErrorHandler) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSubID++
	id := c.nextSubID
	c.errSubs[id] = h
	return &Subscription{cancel: func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.errSubs, id)
	}}
}

// RemoveAllListeners 移除全部三種 handler，UI 整體卸載時使用
func (c *ConnManager) RemoveAllListeners() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgSubs = make(map[int]MessageHandler)
	c.ackSubs = make(map[int]MessageHandler)
	c.errSubs = make(map[int]ErrorHandler)
}

// readLoop 事件分發；連線斷掉時把狀態轉回 disconnected
func (c *ConnManager) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer func() {
		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
			c.done = nil
			c.state = StateDisconnected
		}
		c.mu.Unlock()
		conn.Close()
		close(done)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
			) {
				logger.Log.Infof("chatclient connection closed:", err)
			} else {
				logger.Log.Errorf("chatclient read error:", err)
			}
			return
		}

		var event domain.WSEvent
		if err := json.Unmarshal(data, &event); err != nil {
			logger.Log.Errorf("chatclient event unmarshal error:", err)
			continue
		}

		switch event.Action {
		case string(domain.ReceiveMessage):
			if event.Message != nil {
				for _, h := range c.snapshotMsgSubs() {
					h(*event.Message)
				}
			}
		case string(domain.MessageSent):
			if event.Message != nil {
				for _, h := range c.snapshotAckSubs() {
					h(*event.Message)
				}
			}
		case string(domain.MessageError):
			for _, h := range c.snapshotErrSubs() {
				h(event.Error)
			}
		default:
			logger.Log.Warn("chatclient unknown event", zap.String("action", event.Action))
		}
	}
}

func (c *ConnManager) snapshotMsgSubs() []MessageHandler {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MessageHandler, 0, len(c.msgSubs))
	for _, h := range c.msgSubs {
		out = append(out, h)
	}
	return out
}

func (c *ConnManager) snapshotAckSubs() []MessageHandler {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MessageHandler, 0, len(c.ackSubs))
	for _, h := range c.ackSubs {
		out = append(out, h)
	}
	return out
}

func (c *ConnManager) snapshotErrSubs() []ErrorHandler {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ErrorHandler, 0, len(c.errSubs))
	for _, h := range c.errSubs {
		out = append(out, h)
	}
	return out
}
