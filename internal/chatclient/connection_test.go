package chatclient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// echoServer 收到 send_message 後回 message_sent 確認，
// 並在連線建立時主動推一筆 receive_message
func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(middlewares.QueryToken) == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		inbound := domain.WSEvent{
			Action:  string(domain.ReceiveMessage),
			Success: true,
			Message: &domain.DirectMessage{
				ID:        "srv-1",
				Sender:    domain.UserRef{ID: "alice", Username: "Alice"},
				Receiver:  domain.UserRef{ID: "me"},
				Content:   "welcome",
				CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			},
		}
		if err := conn.WriteJSON(inbound); err != nil {
			return
		}

		for {
			var req domain.WSRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}

			if req.Content == "boom" {
				conn.WriteJSON(domain.WSEvent{
					Action: string(domain.MessageError),
					Error:  "receiver not found",
				})
				continue
			}

			conn.WriteJSON(domain.WSEvent{
				Action:  string(domain.MessageSent),
				Success: true,
				Message: &domain.DirectMessage{
					ID:        "ack-1",
					Sender:    domain.UserRef{ID: "me"},
					Receiver:  domain.UserRef{ID: req.ReceiverID},
					Content:   req.Content,
					CreatedAt: time.Date(2026, 3, 1, 10, 1, 0, 0, time.UTC),
				},
			})
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("timeout waiting for %s", what)
	}
}

// 連線、收推播、送訊息拿確認、錯誤事件的完整來回
func TestConnManager_RoundTrip(t *testing.T) {
	logger.SetNewNop()
	srv := newEchoServer(t)
	defer srv.Close()

	cm := NewConnManager(wsURL(srv))

	received := make(chan struct{})
	acked := make(chan struct{})
	failed := make(chan struct{})

	var inbound, ack domain.DirectMessage
	var sendErr string
	cm.OnMessage(func(msg domain.DirectMessage) {
		inbound = msg
		close(received)
	})
	cm.OnMessageSent(func(msg domain.DirectMessage) {
		ack = msg
		close(acked)
	})
	cm.OnMessageError(func(errMsg string) {
		sendErr = errMsg
		close(failed)
	})

	cm.Connect("test-token")
	assert.Equal(t, StateConnected, cm.State())

	waitFor(t, received, "receive_message")
	assert.Equal(t, "welcome", inbound.Content)
	assert.Equal(t, "alice", inbound.Sender.ID)

	cm.Send("alice", "hello")
	waitFor(t, acked, "message_sent")
	assert.Equal(t, "ack-1", ack.ID)
	assert.Equal(t, "alice", ack.Receiver.ID)

	cm.Send("alice", "boom")
	waitFor(t, failed, "message_error")
	assert.Equal(t, "receiver not found", sendErr)

	cm.Disconnect()
	assert.Equal(t, StateDisconnected, cm.State())
}

// token 空值不嘗試連線，Send 在未連線時安靜丟棄
func TestConnManager_NoToken(t *testing.T) {
	logger.SetNewNop()
	cm := NewConnManager("ws://localhost:0/ws")

	cm.Connect("")
	assert.Equal(t, StateDisconnected, cm.State())
	assert.False(t, cm.IsConnected())

	// 不應該 panic，也不應該改變狀態
	cm.Send("alice", "hello")
	assert.Equal(t, StateDisconnected, cm.State())
}

// Connect 冪等：已連線時重複呼叫不會重撥
func TestConnManager_ConnectIdempotent(t *testing.T) {
	logger.SetNewNop()
	srv := newEchoServer(t)
	defer srv.Close()

	cm := NewConnManager(wsURL(srv))
	cm.Connect("test-token")
	assert.Equal(t, StateConnected, cm.State())

	cm.Connect("test-token")
	assert.Equal(t, StateConnected, cm.State())

	cm.Disconnect()
}

// 撥號失敗：狀態回到 disconnected，不 panic 不回傳錯誤
func TestConnManager_DialFailure(t *testing.T) {
	logger.SetNewNop()
	cm := NewConnManager("ws://127.0.0.1:1/ws")

	cm.Connect("test-token")
	assert.Equal(t, StateDisconnected, cm.State())
}

// Disconnect 返回時 read loop 已經結束，不會有 handler 還在跑
func TestConnManager_DisconnectJoinsReader(t *testing.T) {
	logger.SetNewNop()
	srv := newEchoServer(t)
	defer srv.Close()

	cm := NewConnManager(wsURL(srv))

	started := make(chan struct{})
	finished := make(chan struct{})
	cm.OnMessage(func(domain.DirectMessage) {
		close(started)
		time.Sleep(150 * time.Millisecond)
		close(finished)
	})

	cm.Connect("test-token")
	waitFor(t, started, "receive_message")

	cm.Disconnect()
	select {
	case <-finished:
	default:
		t.Fatal("Disconnect returned while a handler was still running")
	}
	assert.Equal(t, StateDisconnected, cm.State())

	// 重複呼叫安全
	cm.Disconnect()
}

// Subscription.Cancel 只移除自己，其餘訂閱者照常收到事件
func TestConnManager_SubscriptionCancel(t *testing.T) {
	logger.SetNewNop()
	srv := newEchoServer(t)
	defer srv.Close()

	cm := NewConnManager(wsURL(srv))

	keptCh := make(chan struct{})
	kept := 0
	canceled := 0
	sub := cm.OnMessage(func(domain.DirectMessage) { canceled++ })
	cm.OnMessage(func(domain.DirectMessage) {
		kept++
		close(keptCh)
	})

	sub.Cancel()
	sub.Cancel() // 重複 Cancel 安全

	cm.Connect("test-token")
	waitFor(t, keptCh, "receive_message")
	cm.Disconnect()

	assert.Equal(t, 1, kept)
	assert.Equal(t, 0, canceled)
}
