package router

import (
	"github.com/assafmilner/The-Stand-sub001/internal/community/app"
	"github.com/assafmilner/The-Stand-sub001/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// ConnectCheck check api connect start
// @Summary Check community service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "community service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("community service start!")
}

// RegisterRoutes 注册社群相关的路由
// @title The Stand Community Service API
// @version 1.0
// @description API documentation for the community post service
// @host localhost:8082
// @BasePath /
func RegisterRoutes(r *fiber.App, communityHandler *app.CommunityHandler) {
	r.Get("/", ConnectCheck)

	postRoutes := r.Group("/posts", middlewares.JWTMiddleware())
	postRoutes.Get("/", communityHandler.ListFeed)
	postRoutes.Get("/search", communityHandler.SearchPosts)
	postRoutes.Post("/", communityHandler.CreatePost)
	postRoutes.Get("/:id", communityHandler.GetPost)
	postRoutes.Put("/:id", communityHandler.UpdatePost)
	postRoutes.Delete("/:id", communityHandler.DeletePost)
	postRoutes.Get("/:id/comments", communityHandler.ListComments)
	postRoutes.Post("/:id/comments", communityHandler.AddComment)
	postRoutes.Post("/:id/like", communityHandler.ToggleLike)
}
