package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UserChannel 每個使用者自己的推播 channel
func UserChannel(userID string) string {
	return "chat:user:" + userID
}

// PubSub definition message fan-out between chat nodes
type PubSub interface {
	Publish(channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string, handler func(event domain.WSEvent)) error
}

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish 將 message 序列化後，發布到指定 channel
func (r *RedisPubSub) Publish(channel string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, channel, data).Err()
}

// Subscribe 訂閱指定 channel，收到訊息後包成 receive_message 事件交給 handler
func (r *RedisPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.WSEvent)) error {
	sub := r.client.Subscribe(r.ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var msg domain.DirectMessage
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					logger.Log.Error("pubsub payload err :", zap.String("err", fmt.Sprintf("failed to unmarshal message: %v", err)))
					continue
				}

				handler(domain.WSEvent{
					Action:  string(domain.ReceiveMessage),
					Success: true,
					Message: &msg,
				})
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				sub.Close()
				return
			}
		}
	}()
	return nil
}
