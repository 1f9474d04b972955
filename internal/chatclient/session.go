package chatclient

import (
	"sync"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
)

// SessionState 單一對話視窗的生命週期
type SessionState int

const (
	// SessionClosed 視窗已關閉（或尚未開啟）
	SessionClosed SessionState = iota
	// SessionLoading 歷史訊息載入中
	SessionLoading
	// SessionReady 可收發訊息
	SessionReady
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionReady:
		return "ready"
	default:
		return "closed"
	}
}

// ChatSession 一個對話視窗。
// 訊息列表一律從共用快取讀，session 自己只保存輸入框草稿與狀態。
type ChatSession struct {
	client        *Client
	counterpartID string

	mu       sync.Mutex
	state    SessionState
	draft    string
	unsub    func()
	onUpdate func(messages []domain.DirectMessage)
}

// CounterpartID 對話對象 ID
func (s *ChatSession) CounterpartID() string {
	return s.counterpartID
}

// State 回傳視窗狀態
func (s *ChatSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages 回傳目前快取中排好序的訊息列表
func (s *ChatSession) Messages() []domain.DirectMessage {
	msgs, _ := s.client.cache.Get(s.counterpartID)
	return msgs
}

// OnUpdate 設定列表更新 callback（第一次載入與每筆新訊息都會觸發）
func (s *ChatSession) OnUpdate(fn func(messages []domain.DirectMessage)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

// SetDraft 更新輸入框草稿
func (s *ChatSession) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// Draft 回傳輸入框草稿
func (s *ChatSession) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Send 送出訊息並清空草稿；空白內容或視窗未 ready 時 no-op。
// 訊息不做樂觀顯示，等 server 的送出確認事件回來才進列表。
func (s *ChatSession) Send(content string) bool {
	s.mu.Lock()
	if s.state != SessionReady || isBlank(content) {
		s.mu.Unlock()
		return false
	}
	s.draft = ""
	s.mu.Unlock()

	s.client.conn.Send(s.counterpartID, content)
	return true
}

// Close 關閉視窗：取消快取訂閱、清除 active chat 標記、捨棄草稿
func (s *ChatSession) Close() {
	s.mu.Lock()
	if s.state == SessionClosed {
		s.mu.Unlock()
		return
	}
	s.state = SessionClosed
	s.draft = ""
	unsub := s.unsub
	s.unsub = nil
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	s.client.sessionClosed(s)
}

func (s *ChatSession) publish(messages []domain.DirectMessage) {
	s.mu.Lock()
	fn := s.onUpdate
	closed := s.state == SessionClosed
	s.mu.Unlock()
	if closed || fn == nil {
		return
	}
	fn(messages)
}

func isBlank(content string) bool {
	for _, r := range content {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
