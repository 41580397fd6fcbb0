package handler

import (
	"errors"
	"strings"

	"github.com/interviewgenius/server/internal/domain"
	"github.com/interviewgenius/server/internal/service"
	"github.com/interviewgenius/server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	sessionService domain.SessionService
	reportService  *service.ReportService
}

func NewSessionHandler(sessionService domain.SessionService, reportService *service.ReportService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		reportService:  reportService,
	}
}

type updateAnswerRequest struct {
	Answer string `json:"answer"`
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "session retrieved", h.sessionService.Current())
}

func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var cfg domain.InterviewConfig
	if err := c.BodyParser(&cfg); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	cfg.Role = strings.TrimSpace(cfg.Role)

	if err := validateConfig(&cfg); err != nil {
		return response.BadRequest(c, err.Error())
	}

	sess, err := h.sessionService.Start(c.UserContext(), &cfg)
	if err != nil {
		if errors.Is(err, service.ErrInterviewActive) {
			return response.Conflict(c, "an interview is already in progress")
		}
		return response.BadGateway(c, err.Error())
	}

	return response.Success(c, fiber.StatusCreated, "interview started", sess)
}

func (h *SessionHandler) UpdateAnswer(c *fiber.Ctx) error {
	var req updateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	sess, err := h.sessionService.UpdateAnswer(c.UserContext(), c.Params("id"), req.Answer)
	if err != nil {
		return mapSessionError(c, err)
	}

	return response.Success(c, fiber.StatusOK, "answer updated", sess)
}

func (h *SessionHandler) RequestFeedback(c *fiber.Ctx) error {
	sess, err := h.sessionService.RequestFeedback(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapSessionError(c, err)
	}

	return response.Success(c, fiber.StatusOK, "feedback requested", sess)
}

func (h *SessionHandler) ToggleModelAnswer(c *fiber.Ctx) error {
	sess, err := h.sessionService.ToggleModelAnswer(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapSessionError(c, err)
	}

	return response.Success(c, fiber.StatusOK, "model answer toggled", sess)
}

func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	sess, err := h.sessionService.Submit(c.UserContext())
	if err != nil {
		return mapSessionError(c, err)
	}

	return response.Success(c, fiber.StatusOK, "interview submitted", sess)
}

func (h *SessionHandler) Review(c *fiber.Ctx) error {
	sess, err := h.sessionService.Review(c.UserContext())
	if err != nil {
		return mapSessionError(c, err)
	}

	return response.Success(c, fiber.StatusOK, "review mode entered", sess)
}

func (h *SessionHandler) BackToResults(c *fiber.Ctx) error {
	sess, err := h.sessionService.BackToResults(c.UserContext())
	if err != nil {
		return mapSessionError(c, err)
	}

	return response.Success(c, fiber.StatusOK, "returned to results", sess)
}

func (h *SessionHandler) Retry(c *fiber.Ctx) error {
	sess, err := h.sessionService.Retry(c.UserContext())
	if err != nil {
		return mapSessionError(c, err)
	}

	return response.Success(c, fiber.StatusOK, "interview restarted", sess)
}

func (h *SessionHandler) Exit(c *fiber.Ctx) error {
	sess, err := h.sessionService.Exit(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "session cleared", sess)
}

func (h *SessionHandler) Report(c *fiber.Ctx) error {
	data, err := h.reportService.BuildReport(h.sessionService.Current())
	if err != nil {
		if errors.Is(err, service.ErrReportNotReady) {
			return response.Conflict(c, "report is only available once results are ready")
		}
		return response.InternalError(c, err.Error())
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="interview-report.pdf"`)
	return c.Send(data)
}

func mapSessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInterviewNotActive),
		errors.Is(err, service.ErrNoResults),
		errors.Is(err, service.ErrAnswerLocked),
		errors.Is(err, service.ErrFeedbackPending),
		errors.Is(err, service.ErrSessionStateConflict):
		return response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrQuestionNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAnswerTooLong),
		errors.Is(err, service.ErrAnswerTooShort),
		errors.Is(err, service.ErrUnansweredQuestions):
		return response.UnprocessableEntity(c, err.Error())
	default:
		return response.InternalError(c, err.Error())
	}
}

func validateConfig(cfg *domain.InterviewConfig) error {
	validate := validator.New()
	return validate.Struct(cfg)
}
