package app

import (
	"sync"
	"testing"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
)

// overlapWriter 偵測並發寫入：有第二個 goroutine 在寫入途中進來就標記 overlap
type overlapWriter struct {
	mu      sync.Mutex
	active  bool
	overlap bool
	writes  int
}

func (w *overlapWriter) WriteMessage(_ int, _ []byte) error {
	w.mu.Lock()
	if w.active {
		w.overlap = true
	}
	w.active = true
	w.writes++
	w.mu.Unlock()

	time.Sleep(time.Millisecond)

	w.mu.Lock()
	w.active = false
	w.mu.Unlock()
	return nil
}

// pubsub 推播、ping 跟回覆同時寫同一條連線時要逐筆序列化
func TestWebsocketWriteSerialization(t *testing.T) {
	logger.SetNewNop()

	h := NewChatWebsocketHandler(nil, nil, nil)
	writer := &overlapWriter{}
	client := newWSClient(writer)

	event := domain.WSEvent{
		Action:  string(domain.ReceiveMessage),
		Success: true,
		Message: &domain.DirectMessage{ID: "m-1", Content: "שלום"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.sendEvent(client, event)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			client.write(websocket.PingMessage, []byte("ping message"))
		}()
	}
	wg.Wait()

	assert.False(t, writer.overlap, "同一條連線不該有並發寫入")
	assert.Equal(t, 20, writer.writes)
}
