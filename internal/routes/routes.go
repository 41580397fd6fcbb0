package routes

import (
	"github.com/interviewgenius/server/internal/handler"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Session    *handler.SessionHandler
	Generation *handler.GenerationHandler
}

func Setup(app *fiber.App, handlers Handlers) {
	app.Get("/health", healthCheck)

	api := app.Group("/api/v1")

	setupSessionRoutes(api, handlers.Session)
	setupGenerationRoutes(api, handlers.Generation)
}

func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "server is running",
	})
}
