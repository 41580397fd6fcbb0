package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/interviewgenius/server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(count int) *domain.InterviewConfig {
	return &domain.InterviewConfig{
		Role:       "Backend Engineer",
		Count:      count,
		Difficulty: domain.DifficultyHard,
		Topics:     "Concurrency",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *GenerationClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGenerationClient(srv.URL, 5*time.Second)
}

func generatedBatch(n int) []domain.GeneratedQuestion {
	batch := make([]domain.GeneratedQuestion, n)
	for i := range batch {
		batch[i] = domain.GeneratedQuestion{
			Text:        "Question?",
			ModelAnswer: "Answer.",
			Type:        "technical",
		}
	}
	return batch
}

func TestGenerateQuestionsAssignsPositionalIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-questions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var cfg domain.InterviewConfig
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cfg))
		assert.Equal(t, 5, cfg.Count)

		json.NewEncoder(w).Encode(generatedBatch(5))
	})

	questions, err := c.GenerateQuestions(context.Background(), testConfig(5))
	require.NoError(t, err)
	require.Len(t, questions, 5)
	for i, q := range questions {
		assert.Equal(t, fmt.Sprintf("q-%d", i), q.ID)
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.ModelAnswer)
		assert.NotEmpty(t, q.Type)
	}
}

func TestGenerateQuestionsCountMismatchFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generatedBatch(3))
	})

	_, err := c.GenerateQuestions(context.Background(), testConfig(5))
	assert.ErrorIs(t, err, ErrQuestionCountMismatch)
}

func TestGenerateQuestionsEmptyFieldFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		batch := generatedBatch(5)
		batch[2].ModelAnswer = ""
		json.NewEncoder(w).Encode(batch)
	})

	_, err := c.GenerateQuestions(context.Background(), testConfig(5))
	assert.ErrorIs(t, err, ErrMalformedQuestion)
}

func TestGenerateQuestionsSurfacesServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(domain.GenerationError{Error: "model quota exhausted"})
	})

	_, err := c.GenerateQuestions(context.Background(), testConfig(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model quota exhausted")
}

func TestGenerateQuestionsGenericErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GenerateQuestions(context.Background(), testConfig(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGenerateQuestionsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewGenerationClient(srv.URL, time.Second)

	_, err := c.GenerateQuestions(context.Background(), testConfig(5))
	assert.Error(t, err)
}

func TestGetSingleFeedback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feedback", r.URL.Path)

		var req domain.FeedbackRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is a mutex?", req.Question)
		assert.Equal(t, "A lock.", req.UserAnswer)

		json.NewEncoder(w).Encode(domain.FeedbackResponse{Feedback: "Concise but correct."})
	})

	feedback, err := c.GetSingleFeedback(context.Background(), "What is a mutex?", "A lock.")
	require.NoError(t, err)
	assert.Equal(t, "Concise but correct.", feedback)
}

func TestGetSingleFeedbackEmptyFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.FeedbackResponse{})
	})

	feedback, err := c.GetSingleFeedback(context.Background(), "Q", "An answer")
	require.NoError(t, err)
	assert.Equal(t, FeedbackFallback, feedback)
}

func TestGetOverallReviewSubstitutesPlaceholders(t *testing.T) {
	var received domain.OverallReviewRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/overall-review", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(domain.OverallReviewResponse{
			Score:        72,
			Summary:      "Mixed results.",
			Strengths:    []string{"Honesty"},
			Improvements: []string{"Coverage"},
		})
	})

	questions := []domain.Question{
		{ID: "q-0", Text: "First?"},
		{ID: "q-1", Text: "Second?"},
		{ID: "q-2", Text: "Third?"},
	}
	answers := map[string]string{
		"q-0": "answered",
		"q-1": "   ",
	}

	review, err := c.GetOverallReview(context.Background(), questions, answers)
	require.NoError(t, err)

	require.Len(t, received.Questions, 3)
	assert.Equal(t, "answered", received.Answers["q-0"])
	assert.Equal(t, domain.NoAnswerPlaceholder, received.Answers["q-1"])
	assert.Equal(t, domain.NoAnswerPlaceholder, received.Answers["q-2"])

	assert.Equal(t, 72, review.Score)
	assert.Equal(t, "Mixed results.", review.Summary)
	// Duration belongs to the caller, never the service.
	assert.Empty(t, review.Duration)
}

func TestGetOverallReviewSurfacesFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(domain.GenerationError{Error: "overloaded"})
	})

	_, err := c.GetOverallReview(context.Background(), []domain.Question{{ID: "q-0", Text: "Q?"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
}
