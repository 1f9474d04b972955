package repository

import (
	"context"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository definition direct message persistence
type MessageRepository interface {
	// InsertMessage 寫入一筆 1對1 訊息
	InsertMessage(ctx context.Context, msg *domain.DirectMessage) error
	// FindConversation 查詢雙方對話，created_at 升序
	FindConversation(ctx context.Context, userID, counterpartID string, limit int64) ([]domain.DirectMessage, error)
	// FindRecentConversations 以對方為單位聚合出最近聊天列表（新到舊，截斷）
	FindRecentConversations(ctx context.Context, userID string, limit int) ([]domain.RecentConversation, error)
}

type directMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &directMessageRepository{
		coll: db.Collection("direct_messages"),
	}
}

// InsertMessage - 寫入一筆聊天訊息
func (r *directMessageRepository) InsertMessage(ctx context.Context, msg *domain.DirectMessage) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

// FindConversation - 兩個方向的訊息都要取（我傳給他、他傳給我）
func (r *directMessageRepository) FindConversation(ctx context.Context, userID, counterpartID string, limit int64) ([]domain.DirectMessage, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"sender.id": userID, "receiver.id": counterpartID},
			bson.M{"sender.id": counterpartID, "receiver.id": userID},
		},
	}

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var messages []domain.DirectMessage
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// FindRecentConversations - 每個對話對象只留最新一筆
func (r *directMessageRepository) FindRecentConversations(ctx context.Context, userID string, limit int) ([]domain.RecentConversation, error) {
	if limit <= 0 {
		limit = domain.RecentConversationLimit
	}

	pipeline := mongo.Pipeline{
		// 1. 只取跟自己有關的訊息
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "$or", Value: bson.A{
				bson.D{{Key: "sender.id", Value: userID}},
				bson.D{{Key: "receiver.id", Value: userID}},
			}},
		}}},
		// 2. 新到舊，讓 $first 拿到最新訊息
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: -1},
		}}},
		// 3. 算出對方是誰
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "counterpart", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$sender.id", userID}}},
					"$receiver",
					"$sender",
				}},
			}},
		}}},
		// 4. 按對方分組，每組取最新一筆
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$counterpart.id"},
			{Key: "counterpart", Value: bson.D{{Key: "$first", Value: "$counterpart"}}},
			{Key: "last_message", Value: bson.D{{Key: "$first", Value: "$content"}}},
			{Key: "last_message_at", Value: bson.D{{Key: "$first", Value: "$created_at"}}},
		}}},
		// 5. 最近活躍的在前
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "last_message_at", Value: -1},
		}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var results []domain.RecentConversation
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}
