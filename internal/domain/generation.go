package domain

import "context"

// NoAnswerPlaceholder is transmitted in place of an empty answer so the
// generation service always receives a complete question/answer pairing.
const NoAnswerPlaceholder = "No answer provided"

// GenerationClient is the boundary to the external generation service. All
// three exchanges are single request/response calls with no retries.
type GenerationClient interface {
	GenerateQuestions(ctx context.Context, cfg *InterviewConfig) ([]Question, error)
	GetSingleFeedback(ctx context.Context, questionText, answerText string) (string, error)
	GetOverallReview(ctx context.Context, questions []Question, answersByID map[string]string) (*OverallFeedback, error)
}

// Wire types for the three generation exchanges.

type GeneratedQuestion struct {
	Text        string `json:"text"`
	ModelAnswer string `json:"modelAnswer"`
	Type        string `json:"type"`
}

type FeedbackRequest struct {
	Question   string `json:"question"`
	UserAnswer string `json:"userAnswer"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

type ReviewQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type OverallReviewRequest struct {
	Questions []ReviewQuestion  `json:"questions"`
	Answers   map[string]string `json:"answers"`
}

type OverallReviewResponse struct {
	Score        int      `json:"score"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type GenerationError struct {
	Error string `json:"error,omitempty"`
}

// GenerationProvider produces the content behind the generation API. It
// mirrors GenerationClient minus the client-side concerns (id assignment,
// placeholders, fallbacks).
type GenerationProvider interface {
	GenerateQuestions(ctx context.Context, cfg *InterviewConfig) ([]GeneratedQuestion, error)
	SingleFeedback(ctx context.Context, req *FeedbackRequest) (string, error)
	OverallReview(ctx context.Context, req *OverallReviewRequest) (*OverallReviewResponse, error)
}
