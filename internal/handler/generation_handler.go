package handler

import (
	"errors"
	"strings"

	"github.com/interviewgenius/server/internal/domain"
	"github.com/interviewgenius/server/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GenerationHandler exposes the three generation exchanges. Unlike the
// session API it answers with bare JSON payloads and `{error}` bodies on
// failure: this is the wire contract generation clients parse.
type GenerationHandler struct {
	provider domain.GenerationProvider
}

func NewGenerationHandler(provider domain.GenerationProvider) *GenerationHandler {
	return &GenerationHandler{provider: provider}
}

func (h *GenerationHandler) GenerateQuestions(c *fiber.Ctx) error {
	var cfg domain.InterviewConfig
	if err := c.BodyParser(&cfg); err != nil {
		return generationError(c, fiber.StatusBadRequest, "invalid request body")
	}
	cfg.Role = strings.TrimSpace(cfg.Role)
	if err := validateConfig(&cfg); err != nil {
		return generationError(c, fiber.StatusBadRequest, err.Error())
	}

	questions, err := h.provider.GenerateQuestions(c.UserContext(), &cfg)
	if err != nil {
		return mapGenerationError(c, err)
	}

	return c.JSON(questions)
}

func (h *GenerationHandler) SingleFeedback(c *fiber.Ctx) error {
	var req domain.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return generationError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Question == "" {
		return generationError(c, fiber.StatusBadRequest, "question is required")
	}

	feedback, err := h.provider.SingleFeedback(c.UserContext(), &req)
	if err != nil {
		return mapGenerationError(c, err)
	}

	return c.JSON(domain.FeedbackResponse{Feedback: feedback})
}

func (h *GenerationHandler) OverallReview(c *fiber.Ctx) error {
	var req domain.OverallReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return generationError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Questions) == 0 {
		return generationError(c, fiber.StatusBadRequest, "questions are required")
	}

	review, err := h.provider.OverallReview(c.UserContext(), &req)
	if err != nil {
		return mapGenerationError(c, err)
	}

	return c.JSON(review)
}

func mapGenerationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrGenAIUnavailable) {
		return generationError(c, fiber.StatusServiceUnavailable, err.Error())
	}
	return generationError(c, fiber.StatusBadGateway, err.Error())
}

func generationError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(domain.GenerationError{Error: message})
}
