package router

import (
	"context"

	"github.com/assafmilner/The-Stand-sub001/internal/chat/app"
	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes 注册聊天相關路由
func RegisterRoutes(r *fiber.App, chatWebsocket *app.ChatWebsocketHandler, chatHandler *app.ChatHandler) {
	r.Use(middlewares.JWTMiddleware())

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))

	// recent 要註冊在 :counterpartID 之前
	r.Get("/messages/recent", chatHandler.GetRecent)
	r.Get("/messages/:counterpartID", chatHandler.GetHistory)
}
