package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/interviewgenius/server/internal/domain"
)

var (
	ErrGenAIUnavailable   = errors.New("generation model not configured")
	ErrBadModelOutput     = errors.New("generation model returned malformed output")
	ErrWrongQuestionCount = errors.New("generation model returned wrong number of questions")
)

const generateQuestionsPrompt = `Generate %d interview questions for a %s position.
Difficulty: %s.
Topics to focus on: %s.
%s

Provide exactly %d questions. Each question must have a clear "modelAnswer" (one concise paragraph).

Respond ONLY with a valid JSON array in this exact format:
[
  {
    "text": "The interview question text.",
    "modelAnswer": "A high-quality model answer (1 paragraph).",
    "type": "The type of question (e.g., technical, behavioral, coding)."
  }
]`

const singleFeedbackPrompt = `Act as an expert interviewer. Provide constructive feedback for this answer.
Question: %s
User's Answer: %s

Requirements:
- Keep it to one concise paragraph (max 400 chars).
- Mention what was good.
- Suggest specific missing points or improvements.
- Use professional, encouraging tone.`

const overallReviewPrompt = `Analyze these interview responses and provide a summary review.
Data: %s

Instructions:
- Give an overall score from 0-100.
- Provide a one-paragraph summary.
- List 2-3 key strengths.
- List 2-3 specific areas for improvement.

Respond ONLY with valid JSON in this exact format:
{
  "score": 0,
  "summary": "...",
  "strengths": ["..."],
  "improvements": ["..."]
}`

// promptRunner is the slice of pkg/genai.Client the generation side needs.
type promptRunner interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type generationService struct {
	genaiClient promptRunner
}

// NewGenerationService builds the Gemini-backed provider behind the
// generation API. A nil client is allowed so the session side of a deployment
// can run without a Gemini key; every operation then fails with
// ErrGenAIUnavailable.
func NewGenerationService(genaiClient promptRunner) domain.GenerationProvider {
	return &generationService{genaiClient: genaiClient}
}

func (s *generationService) GenerateQuestions(ctx context.Context, cfg *domain.InterviewConfig) ([]domain.GeneratedQuestion, error) {
	if s.genaiClient == nil {
		return nil, ErrGenAIUnavailable
	}

	topics := cfg.Topics
	if topics == "" {
		topics = "General technical and behavioral"
	}
	codingHint := "Focus on conceptual and architectural questions."
	if cfg.IncludeCoding {
		codingHint = "Include some code-output based questions where appropriate."
	}

	prompt := fmt.Sprintf(generateQuestionsPrompt, cfg.Count, cfg.Role, cfg.Difficulty, topics, codingHint, cfg.Count)

	result, err := s.genaiClient.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var questions []domain.GeneratedQuestion
	if err := json.Unmarshal([]byte(result), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	if len(questions) != cfg.Count {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrWrongQuestionCount, cfg.Count, len(questions))
	}
	for i, q := range questions {
		if q.Text == "" || q.ModelAnswer == "" || q.Type == "" {
			return nil, fmt.Errorf("%w: item %d has empty fields", ErrBadModelOutput, i)
		}
	}

	return questions, nil
}

func (s *generationService) SingleFeedback(ctx context.Context, req *domain.FeedbackRequest) (string, error) {
	if s.genaiClient == nil {
		return "", ErrGenAIUnavailable
	}

	prompt := fmt.Sprintf(singleFeedbackPrompt, req.Question, req.UserAnswer)
	return s.genaiClient.GenerateText(ctx, prompt)
}

func (s *generationService) OverallReview(ctx context.Context, req *domain.OverallReviewRequest) (*domain.OverallReviewResponse, error) {
	if s.genaiClient == nil {
		return nil, ErrGenAIUnavailable
	}

	type reviewItem struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	items := make([]reviewItem, len(req.Questions))
	for i, q := range req.Questions {
		answer := req.Answers[q.ID]
		if answer == "" {
			answer = domain.NoAnswerPlaceholder
		}
		items[i] = reviewItem{Question: q.Text, Answer: answer}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	result, err := s.genaiClient.GenerateJSON(ctx, fmt.Sprintf(overallReviewPrompt, string(data)))
	if err != nil {
		return nil, err
	}

	var review domain.OverallReviewResponse
	if err := json.Unmarshal([]byte(result), &review); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	if review.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrBadModelOutput)
	}

	return &review, nil
}
