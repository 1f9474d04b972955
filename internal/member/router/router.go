package router

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/assafmilner/The-Stand-sub001/internal/member/app"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check member service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "member service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("member service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param service query string true "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {string} string "Service debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	query, _ := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	service := query.Get("service")
	statusStr := query.Get("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}

// RegisterRoutes 注册会员相关的路由
// @title The Stand Member Service API
// @version 1.0
// @description API documentation for the fan member service
// @host localhost:8081
// @BasePath /
func RegisterRoutes(r *fiber.App, memberHandler *app.MemberHandler) {
	r.Get("/swagger/*", swagger.HandlerDefault)
	r.Get("/", ConnectCheck)
	r.Post("/debug", DebugLogFlag)

	// 聊天服務內部解析會員用，不走 JWT
	r.Get("/internal/fans/:id", memberHandler.ResolveFan)

	fanRoutes := r.Group("/fans")
	fanRoutes.Post("/register", memberHandler.Register)
	fanRoutes.Post("/login", memberHandler.Login)

	fanRoutes.Use(middlewares.JWTMiddleware())
	fanRoutes.Post("/logout", memberHandler.Logout)
	fanRoutes.Get("/me", memberHandler.Me)
	fanRoutes.Put("/me", memberHandler.UpdateProfile)
	fanRoutes.Post("/me/avatar", memberHandler.UploadAvatar)

	friendRoutes := r.Group("/friends", middlewares.JWTMiddleware())
	friendRoutes.Get("/", memberHandler.ListFriends)
	friendRoutes.Post("/requests", memberHandler.SendFriendRequest)
	friendRoutes.Get("/requests", memberHandler.ListFriendRequests)
	friendRoutes.Put("/requests/:id", memberHandler.RespondFriendRequest)

	ticketRoutes := r.Group("/tickets", middlewares.JWTMiddleware())
	ticketRoutes.Get("/", memberHandler.ListTickets)
	ticketRoutes.Post("/", memberHandler.CreateTicket)
	ticketRoutes.Post("/:id/purchase", memberHandler.PurchaseTicket)
}
