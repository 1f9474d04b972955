package main

import (
	"github.com/assafmilner/The-Stand-sub001/internal/member/router"

	"github.com/gofiber/fiber/v2"
)

// 因拆分微服務。此程式用於 init swagger
// swag init output ./docs
func main() {
	app := fiber.New()

	router.RegisterRoutes(app, nil)
}
