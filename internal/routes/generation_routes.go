package routes

import (
	"github.com/interviewgenius/server/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func setupGenerationRoutes(router fiber.Router, h *handler.GenerationHandler) {
	generation := router.Group("/generation")

	generation.Post("/generate-questions", h.GenerateQuestions)
	generation.Post("/feedback", h.SingleFeedback)
	generation.Post("/overall-review", h.OverallReview)
}
