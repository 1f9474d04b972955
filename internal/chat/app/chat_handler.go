package app

import (
	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatHandler REST 端點（歷史訊息、最近聊天）
type ChatHandler struct {
	messageUC *MessageUseCase
}

// NewChatHandler create ChatHandler
func NewChatHandler(messageUC *MessageUseCase) *ChatHandler {
	return &ChatHandler{messageUC: messageUC}
}

// GetHistory 取得跟某個對象的對話
// GET /messages/:counterpartID
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)
	counterpartID := c.Params("counterpartID")

	messages, err := h.messageUC.History(c.Context(), userID, counterpartID)
	if err != nil {
		logger.Log.Error("get history err ", zap.String("UserID", userID), zap.String("err", err.Error()))
		return c.JSON(domain.HistoryResult{Success: false, Messages: []domain.DirectMessage{}})
	}
	if messages == nil {
		messages = []domain.DirectMessage{}
	}

	return c.JSON(domain.HistoryResult{Success: true, Messages: messages})
}

// GetRecent 取得最近聊天列表
// GET /messages/recent
func (h *ChatHandler) GetRecent(c *fiber.Ctx) error {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)

	conversations, err := h.messageUC.Recent(c.Context(), userID)
	if err != nil {
		logger.Log.Error("get recent err ", zap.String("UserID", userID), zap.String("err", err.Error()))
		return c.JSON(domain.RecentResult{Success: false, Conversations: []domain.RecentConversation{}})
	}
	if conversations == nil {
		conversations = []domain.RecentConversation{}
	}

	return c.JSON(domain.RecentResult{Success: true, Conversations: conversations})
}
