package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/community/app"
	"github.com/assafmilner/The-Stand-sub001/internal/community/repository"
	"github.com/assafmilner/The-Stand-sub001/internal/community/router"
	"github.com/assafmilner/The-Stand-sub001/pkg/config"
	"github.com/assafmilner/The-Stand-sub001/pkg/database"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.CommunityService, config.EnvConfig.CommunityServiceLogPath)
	cfg := config.LoadConfig[config.Community](config.EnvConfig.CommunityService, config.EnvConfig.CommunityServiceYAMLPath)

	// 1. PostgreSQL (貼文/留言/按讚) 走 gorm
	sqlParams := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	db, err := database.NewPGConnection(database.Connection{
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

	// 2. Repository 跟 UseCase
	postRepo := repository.NewPostRepo(db)
	if err := postRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal(fmt.Sprintf("auto migrate err : %v", err))
	}
	usecase := app.NewCommunityUseCase(postRepo)

	// 3. 啟動 Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.CommunityServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, app.NewCommunityHandler(usecase))

	port := ":" + cfg.Port
	log.Printf("Community Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
