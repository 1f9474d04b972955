package chatclient

import (
	"context"
	"sync"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// MockHistoryFetcher mock HistoryFetcher
type MockHistoryFetcher struct {
	mock.Mock
}

func (m *MockHistoryFetcher) FetchHistory(ctx context.Context, counterpartID string) ([]domain.DirectMessage, error) {
	args := m.Called(ctx, counterpartID)
	if msgs, ok := args.Get(0).([]domain.DirectMessage); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRecentFetcher mock RecentFetcher
type MockRecentFetcher struct {
	mock.Mock
}

func (m *MockRecentFetcher) FetchRecent(ctx context.Context) ([]domain.RecentConversation, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.RecentConversation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeTransport 測試用的記憶體內連線層，事件由測試自己觸發
type fakeTransport struct {
	mu        sync.Mutex
	connected bool
	tokens    []string
	sent      [][2]string

	nextSubID int
	msgSubs   map[int]MessageHandler
	ackSubs   map[int]MessageHandler
	errSubs   map[int]ErrorHandler
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		msgSubs: make(map[int]MessageHandler),
		ackSubs: make(map[int]MessageHandler),
		errSubs: make(map[int]ErrorHandler),
	}
}

func (f *fakeTransport) Connect(authToken string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, authToken)
	if authToken != "" {
		f.connected = true
	}
}

func (f *fakeTransport) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
}

func (f *fakeTransport) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeTransport) Send(receiverID, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return
	}
	f.sent = append(f.sent, [2]string{receiverID, content})
}

func (f *fakeTransport) OnMessage(h MessageHandler) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSubID++
	id := f.nextSubID
	f.msgSubs[id] = h
	return &Subscription{cancel: func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.msgSubs, id)
	}}
}

func (f *fakeTransport) OnMessageSent(h MessageHandler) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSubID++
	id := f.nextSubID
	f.ackSubs[id] = h
	return &Subscription{cancel: func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.ackSubs, id)
	}}
}

func (f *fakeTransport) OnMessageError(h ErrorHandler) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSubID++
	id := f.nextSubID
	f.errSubs[id] = h
	return &Subscription{cancel: func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.errSubs, id)
	}}
}

func (f *fakeTransport) RemoveAllListeners() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgSubs = make(map[int]MessageHandler)
	f.ackSubs = make(map[int]MessageHandler)
	f.errSubs = make(map[int]ErrorHandler)
}

func (f *fakeTransport) emitMessage(msg domain.DirectMessage) {
	f.mu.Lock()
	handlers := make([]MessageHandler, 0, len(f.msgSubs))
	for _, h := range f.msgSubs {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()
	for _, h := range handlers {
		h(msg)
	}
}

func (f *fakeTransport) emitSent(msg domain.DirectMessage) {
	f.mu.Lock()
	handlers := make([]MessageHandler, 0, len(f.ackSubs))
	for _, h := range f.ackSubs {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()
	for _, h := range handlers {
		h(msg)
	}
}

func (f *fakeTransport) emitError(errMsg string) {
	f.mu.Lock()
	handlers := make([]ErrorHandler, 0, len(f.errSubs))
	for _, h := range f.errSubs {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()
	for _, h := range handlers {
		h(errMsg)
	}
}

// recordToaster 記錄彈出的 toast
type recordToaster struct {
	mu     sync.Mutex
	toasts []MessageNotification
}

func (t *recordToaster) ShowToast(n MessageNotification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = append(t.toasts, n)
}

func (t *recordToaster) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.toasts)
}

// recordAlerter 記錄阻斷式提示
type recordAlerter struct {
	mu     sync.Mutex
	alerts []string
}

func (a *recordAlerter) Alert(errMsg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, errMsg)
}
