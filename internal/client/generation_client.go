package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/interviewgenius/server/internal/domain"
)

var (
	ErrQuestionCountMismatch = errors.New("generation service returned wrong number of questions")
	ErrMalformedQuestion     = errors.New("generation service returned an incomplete question")
)

// FeedbackFallback is returned when the service answers with empty feedback
// so the caller never observes an undefined value.
const FeedbackFallback = "Could not generate feedback at this time."

// GenerationClient talks to the generation service over HTTP: three JSON
// request/response exchanges, no retries, no streaming.
type GenerationClient struct {
	baseURL string
	client  *http.Client
}

func NewGenerationClient(baseURL string, timeout time.Duration) *GenerationClient {
	return &GenerationClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateQuestions requests a batch of questions and assigns each a stable
// positional id (q-0, q-1, ...). A count mismatch or empty field in the
// response is a generation failure; no partial result is returned.
func (c *GenerationClient) GenerateQuestions(ctx context.Context, cfg *domain.InterviewConfig) ([]domain.Question, error) {
	var generated []domain.GeneratedQuestion
	if err := c.postJSON(ctx, "/generate-questions", cfg, &generated); err != nil {
		return nil, err
	}

	if len(generated) != cfg.Count {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrQuestionCountMismatch, cfg.Count, len(generated))
	}

	questions := make([]domain.Question, len(generated))
	for i, g := range generated {
		if g.Text == "" || g.ModelAnswer == "" || g.Type == "" {
			return nil, fmt.Errorf("%w: item %d", ErrMalformedQuestion, i)
		}
		questions[i] = domain.Question{
			ID:          fmt.Sprintf("q-%d", i),
			Text:        g.Text,
			ModelAnswer: g.ModelAnswer,
			Type:        g.Type,
		}
	}

	return questions, nil
}

func (c *GenerationClient) GetSingleFeedback(ctx context.Context, questionText, answerText string) (string, error) {
	req := domain.FeedbackRequest{
		Question:   questionText,
		UserAnswer: answerText,
	}

	var resp domain.FeedbackResponse
	if err := c.postJSON(ctx, "/feedback", &req, &resp); err != nil {
		return "", err
	}

	if resp.Feedback == "" {
		return FeedbackFallback, nil
	}
	return resp.Feedback, nil
}

// GetOverallReview submits the full transcript for review. Questions without
// a recorded answer are transmitted with an explicit placeholder so the
// service always sees an order-matched pairing. The duration field of the
// result is left empty for the caller to fill in.
func (c *GenerationClient) GetOverallReview(ctx context.Context, questions []domain.Question, answersByID map[string]string) (*domain.OverallFeedback, error) {
	req := domain.OverallReviewRequest{
		Questions: make([]domain.ReviewQuestion, len(questions)),
		Answers:   make(map[string]string, len(questions)),
	}
	for i, q := range questions {
		req.Questions[i] = domain.ReviewQuestion{ID: q.ID, Text: q.Text}
		answer := answersByID[q.ID]
		if strings.TrimSpace(answer) == "" {
			answer = domain.NoAnswerPlaceholder
		}
		req.Answers[q.ID] = answer
	}

	var resp domain.OverallReviewResponse
	if err := c.postJSON(ctx, "/overall-review", &req, &resp); err != nil {
		return nil, err
	}

	return &domain.OverallFeedback{
		Score:        resp.Score,
		Summary:      resp.Summary,
		Strengths:    resp.Strengths,
		Improvements: resp.Improvements,
	}, nil
}

func (c *GenerationClient) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var genErr domain.GenerationError
		if err := json.Unmarshal(data, &genErr); err == nil && genErr.Error != "" {
			return fmt.Errorf("generation service error: %s", genErr.Error)
		}
		return fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse generation response: %w", err)
	}
	return nil
}
