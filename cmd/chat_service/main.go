package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/app"
	"github.com/assafmilner/The-Stand-sub001/internal/chat/repository"
	"github.com/assafmilner/The-Stand-sub001/internal/chat/router"
	"github.com/assafmilner/The-Stand-sub001/pkg/config"
	"github.com/assafmilner/The-Stand-sub001/pkg/database"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)

	// 1. 建立 Mongo 連線 (存訊息)
	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.MongoSQL.User, cfg.MongoSQL.Password, cfg.MongoSQL.Host, cfg.MongoSQL.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.MongoSQL.RetryCount,
			RetryInterval: time.Duration(cfg.MongoSQL.RetryInterval),
		},
		cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// 2. 建立 Redis 連線 (Pub/Sub)
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// 3. 建立 Kafka Writer (訊息歸檔串流)，失敗不擋服務啟動
	archive, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
	})
	if err != nil {
		logger.Log.Error(fmt.Sprintf("connect kafka err : %v, archive disabled", err))
		archive = nil
	} else {
		defer archive.Close()
	}

	// 4. member service 內部查詢（送訊息時解析對方的名字跟頭像）
	memberBase := fmt.Sprintf("http://%s:%s", cfg.MemberService.Name, cfg.MemberService.Port)
	directory := repository.NewMemberDirectory(memberBase)

	// 5. 初始化 Repository 跟 UseCase
	msgRepo := repository.NewMongoMessageRepository(mongo.Database)
	pubSub := repository.NewRedisPubSub(redisClient)
	messageUC := app.NewMessageUseCase(msgRepo, pubSub, directory, archive)

	// 6. 啟動 Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, app.NewChatWebsocketHandler(messageUC, pubSub, directory), app.NewChatHandler(messageUC))

	port := ":" + cfg.Port
	log.Printf("Chat Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
