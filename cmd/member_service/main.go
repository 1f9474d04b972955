package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/member/app"
	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
	"github.com/assafmilner/The-Stand-sub001/internal/member/repository"
	"github.com/assafmilner/The-Stand-sub001/internal/member/router"
	"github.com/assafmilner/The-Stand-sub001/pkg/config"
	"github.com/assafmilner/The-Stand-sub001/pkg/database"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	_ "github.com/assafmilner/The-Stand-sub001/docs"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.MemberService, config.EnvConfig.MemberServiceLogPath)
	cfg := config.LoadConfig[config.Member](config.EnvConfig.MemberService, config.EnvConfig.MemberServiceYAMLPath)

	// 1. PostgreSQL (會員/好友/球票)
	sqlParams := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    sqlParams,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to postgreSQL database after retries",
			zap.String("address", fmt.Sprintf("[%s]", sqlParams)),
			zap.Error(err),
		)
	}
	defer pool.Close()

	// 2. Redis (session)
	masterName, sentinel := config.GetRedisSetting()
	redisRepo, err := database.NewRedisRepository[domain.FanSession](masterName, sentinel, cfg.RedisMember.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// 3. MinIO (頭像)
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      cfg.MinIO.Endpoint,
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.Bucket,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect minio err : %v", err))
	}

	// 4. RabbitMQ (球票事件)，失敗不擋服務啟動
	var rabbit database.RabbitRepo
	rabbitConn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    cfg.Rabbit.URL,
		RetryCount:    cfg.Rabbit.RetryCount,
		RetryInterval: time.Duration(cfg.Rabbit.RetryInterval),
	})
	if err != nil {
		logger.Log.Error(fmt.Sprintf("connect rabbitmq err : %v, ticket events disabled", err))
	} else {
		defer rabbitConn.Close()
		ch, err := database.GetRabbitMQChannelWithRetry(rabbitConn, cfg.Rabbit.RetryCount, time.Duration(cfg.Rabbit.RetryInterval))
		if err != nil {
			logger.Log.Error(fmt.Sprintf("rabbitmq channel err : %v, ticket events disabled", err))
		} else {
			if _, err := ch.QueueDeclare(domain.TicketEventsQueue, true, false, false, false, nil); err != nil {
				logger.Log.Error(fmt.Sprintf("declare queue err : %v", err))
			}
			rabbit = database.NewRabbitRepository(ch)
		}
	}

	// 5. Repository 跟 UseCase
	fanRepo := repository.NewFanRepository(pool)
	friendRepo := repository.NewFriendRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	memberUC := app.NewMemberUseCase(fanRepo, cfg.SessionTTL*time.Minute, redisRepo, minioClient)
	friendUC := app.NewFriendUseCase(friendRepo, fanRepo)
	ticketUC := app.NewTicketUseCase(ticketRepo, rabbit)

	// 6. 啟動 Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.MemberServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, app.NewMemberHandler(memberUC, friendUC, ticketUC))

	port := ":" + cfg.Port
	log.Printf("Member Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
