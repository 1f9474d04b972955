package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/internal/chat/repository"
	"github.com/assafmilner/The-Stand-sub001/pkg"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// MessageUseCase 負責處理 1對1 訊息
type MessageUseCase struct {
	msgRepo   repository.MessageRepository
	pubSub    repository.PubSub
	directory repository.UserDirectory
	archive   *kafka.Writer // optional，訊息歸檔串流
}

// NewMessageUseCase init message use case
func NewMessageUseCase(
	msgRepo repository.MessageRepository,
	pubSub repository.PubSub,
	directory repository.UserDirectory,
	archive *kafka.Writer,
) *MessageUseCase {
	return &MessageUseCase{
		msgRepo:   msgRepo,
		pubSub:    pubSub,
		directory: directory,
		archive:   archive,
	}
}

// Send 寫入訊息並推播給接收方，回傳 server 定版的訊息（含 ID 跟時間）
func (uc *MessageUseCase) Send(ctx context.Context, sender domain.UserRef, receiverID, content string) (*domain.DirectMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("empty message content")
	}
	if receiverID == "" || receiverID == sender.ID {
		return nil, errors.New("invalid receiver")
	}

	// 1. 解析接收方（確認存在，順便拿名字頭像放到訊息上）
	receiver, err := uc.directory.Resolve(ctx, receiverID)
	if err != nil {
		return nil, errors.New("receiver not found")
	}

	// 2. 建立訊息，ID 一律由 server 產生
	msg := &domain.DirectMessage{
		ID:        uuid.New().String(),
		Sender:    sender,
		Receiver:  receiver,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.msgRepo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	// 3. 推播給接收方所在節點
	if uc.pubSub != nil {
		if err := uc.pubSub.Publish(repository.UserChannel(receiverID), msg); err != nil {
			logger.Log.Errorf("publish message error:", err)
		}
	}

	// 4. 訊息歸檔串流，失敗只記 log 不影響送信
	if uc.archive != nil {
		data, _ := json.Marshal(msg)
		if err := uc.archive.WriteMessages(ctx, kafka.Message{
			Key:   []byte(pkg.ConversationKey(sender.ID, receiverID)),
			Value: data,
		}); err != nil {
			logger.Log.Errorf("archive message error:", err)
		}
	}

	return msg, nil
}

// History 取得跟某個對象的完整對話（升序）
func (uc *MessageUseCase) History(ctx context.Context, userID, counterpartID string) ([]domain.DirectMessage, error) {
	return uc.msgRepo.FindConversation(ctx, userID, counterpartID, 0)
}

// Recent 取得最近聊天列表
func (uc *MessageUseCase) Recent(ctx context.Context, userID string) ([]domain.RecentConversation, error) {
	return uc.msgRepo.FindRecentConversations(ctx, userID, domain.RecentConversationLimit)
}
