package app

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/internal/chat/repository"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// wsWriter 可寫入 websocket 的最小介面
type wsWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// wsClient 單一連線的寫出端。websocket 不允許並發寫入，
// pubsub 推播、ping 跟讀迴圈的回覆統一走這裡
type wsClient struct {
	writeMu sync.Mutex
	writer  wsWriter
}

func newWSClient(w wsWriter) *wsClient {
	return &wsClient{writer: w}
}

func (c *wsClient) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.writer.WriteMessage(messageType, data)
}

// ChatWebsocketHandler websocket 連線處理
type ChatWebsocketHandler struct {
	messageUC *MessageUseCase
	pubSub    repository.PubSub
	directory repository.UserDirectory
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(
	messageUC *MessageUseCase,
	pubSub repository.PubSub,
	directory repository.UserDirectory,
) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		messageUC: messageUC,
		pubSub:    pubSub,
		directory: directory,
	}
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenUser := conn.Locals(middlewares.TokenUserID)
	userID, ok := tokenUser.(string)
	logger.Log.Info("websocket handle userID", zap.String("userID", userID), zap.String("ok", strconv.FormatBool(ok)))
	if !ok || userID == "" {
		conn.Close()
		return
	}

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.String("userID", userID))
		conn.Close()
		cancel()
	}()

	//client發出close
	//fiber會自動處理(在read msg 回傳err),故需要SetCloseHandler另外接出
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	//server發出ping之後client連線正常會回pong
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})

	//client發出ping
	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	// 解析自己的 UserRef，之後送出的訊息都帶這份資料
	sender, err := h.directory.Resolve(ctx, userID)
	if err != nil {
		logger.Log.Errorf("resolve self error:", err)
		sender = domain.UserRef{ID: userID}
	}

	client := newWSClient(conn)

	// 啟用sub訂閱自己的訊息
	h.pubSub.Subscribe(ctxClose, repository.UserChannel(userID), func(event domain.WSEvent) {
		h.sendEvent(client, event)
	})

	// 定期發送 Ping
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := client.write(websocket.PingMessage, []byte("ping message")); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
			case <-ctxClose.Done():
				logger.Log.Infof("Ping goroutine cancelled for user:", userID)
				return
			}
		}
	}()

	for {
		// 1. 讀取前端訊息
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived, //1005
			) {
				logger.Log.Infof("Connection closed:", err)
			} else {
				//直接斷線 1006
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, client, sender, mt, message)
	}
}

func (h *ChatWebsocketHandler) execWebsocketAction(ctx context.Context, client *wsClient, sender domain.UserRef, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, client, sender, msg)
	default:
		h.sendError(client, "unknown message type")
	}
}

func (h *ChatWebsocketHandler) textMessageAction(ctx context.Context, client *wsClient, sender domain.UserRef, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		logger.Log.Errorf("json unmarshal error:", err)
		h.sendError(client, "malformed request")
		return
	}

	switch req.Action {
	//傳送訊息，寫入db並推播給接收方
	case string(domain.SendMessage):
		sent, err := h.messageUC.Send(ctx, sender, req.ReceiverID, req.Content)
		if err != nil {
			logger.Log.Error("websocket send err ",
				zap.String("UserID", sender.ID),
				zap.String("ReceiverID", req.ReceiverID),
				zap.String("err", err.Error()))
			h.sendEvent(client, domain.WSEvent{
				Action:  string(domain.MessageError),
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		// sender 端的確認事件，payload 是 server 定版訊息
		h.sendEvent(client, domain.WSEvent{
			Action:  string(domain.MessageSent),
			Success: true,
			Message: sent,
		})

	default:
		h.sendError(client, "unknown action")
	}
}

// sendEvent - 發送 JSON 給前端
func (h *ChatWebsocketHandler) sendEvent(client *wsClient, event domain.WSEvent) {
	b, _ := json.Marshal(event)
	if err := client.write(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *ChatWebsocketHandler) sendError(client *wsClient, errorMsg string) {
	h.sendEvent(client, domain.WSEvent{
		Action:  string(domain.MessageError),
		Success: false,
		Error:   errorMsg,
	})
}
