package domain

import (
	"context"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseConfiguring Phase = "configuring"
	PhaseInProgress  Phase = "in_progress"
	PhaseResults     Phase = "results"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// AnswerMaxLen is the hard cap on answer text enforced at the edit boundary.
const AnswerMaxLen = 500

type InterviewConfig struct {
	Role          string     `json:"role" validate:"required,min=1,max=255"`
	Count         int        `json:"count" validate:"required,oneof=5 10 20"`
	Difficulty    Difficulty `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Topics        string     `json:"topics" validate:"max=1000"`
	IncludeCoding bool       `json:"includeCoding"`
}

type Question struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	ModelAnswer string `json:"modelAnswer"`
	Type        string `json:"type"`
}

// AnswerRecord tracks one question's answer state. A record exists for every
// question id from the moment a session enters the in-progress phase.
type AnswerRecord struct {
	Answer          string `json:"answer"`
	Feedback        string `json:"feedback,omitempty"`
	ShowModelAnswer bool   `json:"showModelAnswer,omitempty"`
}

type OverallFeedback struct {
	Score        int      `json:"score"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Duration     string   `json:"duration,omitempty"`
}

/// Session is the unit of persistence: everything one interview attempt holds.
// StartedAt is epoch milliseconds, nil while configuring.
type Session struct {
	ID        uuid.UUID                `json:"id"`
	Phase     Phase                    `json:"phase"`
	Config    *InterviewConfig         `json:"config,omitempty"`
	Questions []Question               `json:"questions,omitempty"`
	Answers   map[string]*AnswerRecord `json:"answers,omitempty"`
	Overall   *OverallFeedback         `json:"overall,omitempty"`
	StartedAt *int64                   `json:"startedAt,omitempty"`
}

func NewSession() *Session {
	return &Session{
		ID:    uuid.New(),
		Phase: PhaseConfiguring,
	}
}

// InReviewMode reports whether the session re-entered the in-progress view
// after results were produced. Answers are frozen in review mode.
func (s *Session) InReviewMode() bool {
	return s.Phase == PhaseInProgress && s.Overall != nil
}

func (s *Session) Question(id string) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := &Session{
		ID:    s.ID,
		Phase: s.Phase,
	}
	if s.Config != nil {
		cfg := *s.Config
		out.Config = &cfg
	}
	if s.Questions != nil {
		out.Questions = make([]Question, len(s.Questions))
		copy(out.Questions, s.Questions)
	}
	if s.Answers != nil {
		out.Answers = make(map[string]*AnswerRecord, len(s.Answers))
		for id, rec := range s.Answers {
			r := *rec
			out.Answers[id] = &r
		}
	}
	if s.Overall != nil {
		fb := *s.Overall
		fb.Strengths = append([]string(nil), s.Overall.Strengths...)
		fb.Improvements = append([]string(nil), s.Overall.Improvements...)
		out.Overall = &fb
	}
	if s.StartedAt != nil {
		start := *s.StartedAt
		out.StartedAt = &start
	}
	return out
}

// SessionStore persists the single resident session under one fixed key.
// Load returns (nil, nil) when no record exists or the record is malformed;
// corrupt data is treated as absent, never as an error.
type SessionStore interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}

// SessionService is the interview state machine. All operations persist the
// session after a successful mutation and return a snapshot of it.
type SessionService interface {
	Current() *Session
	Start(ctx context.Context, cfg *InterviewConfig) (*Session, error)
	UpdateAnswer(ctx context.Context, questionID, answer string) (*Session, error)
	RequestFeedback(ctx context.Context, questionID string) (*Session, error)
	ToggleModelAnswer(ctx context.Context, questionID string) (*Session, error)
	Submit(ctx context.Context) (*Session, error)
	Review(ctx context.Context) (*Session, error)
	BackToResults(ctx context.Context) (*Session, error)
	Retry(ctx context.Context) (*Session, error)
	Exit(ctx context.Context) (*Session, error)
}
