package routes

import (
	"github.com/interviewgenius/server/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func setupSessionRoutes(router fiber.Router, h *handler.SessionHandler) {
	session := router.Group("/session")

	session.Get("/", h.Get)
	session.Post("/", h.Start)
	session.Delete("/", h.Exit)

	session.Put("/answers/:id", h.UpdateAnswer)
	session.Post("/answers/:id/feedback", h.RequestFeedback)
	session.Post("/answers/:id/model-answer", h.ToggleModelAnswer)

	session.Post("/submit", h.Submit)
	session.Post("/review", h.Review)
	session.Post("/review/back", h.BackToResults)
	session.Post("/retry", h.Retry)
	session.Get("/report", h.Report)
}
