package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/interviewgenius/server/internal/domain"
)

var (
	ErrInterviewActive      = errors.New("an interview is already in progress")
	ErrInterviewNotActive   = errors.New("no interview is in progress")
	ErrNoResults            = errors.New("no results are available")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrAnswerTooLong        = errors.New("answer exceeds the maximum length")
	ErrAnswerLocked         = errors.New("answers are read-only in review mode")
	ErrAnswerTooShort       = errors.New("answer is too short for feedback")
	ErrFeedbackPending      = errors.New("feedback request already pending for this question")
	ErrUnansweredQuestions  = errors.New("all questions must be answered before submitting")
	ErrSessionStateConflict = errors.New("session changed while the request was in flight")
)

// Fallback review used when the overall-review call fails; the session still
// reaches the results phase.
const (
	fallbackSummary     = "Analysis failed. Please try again later."
	fallbackStrength    = "Internal error"
	fallbackImprovement = "Check internet connection"
)

// sessionService owns the single resident session and mediates every phase
// transition. The store is rewritten after each state-changing action.
type sessionService struct {
	store     domain.SessionStore
	genClient domain.GenerationClient

	mu      sync.Mutex
	sess    *domain.Session
	pending map[string]bool
	now     func() time.Time
}

// NewSessionService restores the persisted session if one exists; an absent
// or corrupt record falls back to a fresh configuring session.
func NewSessionService(ctx context.Context, store domain.SessionStore, genClient domain.GenerationClient) (domain.SessionService, error) {
	sess, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		sess = domain.NewSession()
	}

	return &sessionService{
		store:     store,
		genClient: genClient,
		sess:      sess,
		pending:   make(map[string]bool),
		now:       time.Now,
	}, nil
}

func (s *sessionService) Current() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Clone()
}

// Start generates the question set and enters the in-progress phase. On any
// generation failure the session stays in configuring so the user can retry
// with the same or adjusted input.
func (s *sessionService) Start(ctx context.Context, cfg *domain.InterviewConfig) (*domain.Session, error) {
	s.mu.Lock()
	if s.sess.Phase != domain.PhaseConfiguring {
		s.mu.Unlock()
		return nil, ErrInterviewActive
	}
	sessID := s.sess.ID
	s.mu.Unlock()

	questions, err := s.genClient.GenerateQuestions(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess.ID != sessID || s.sess.Phase != domain.PhaseConfiguring {
		return nil, ErrSessionStateConflict
	}

	answers := make(map[string]*domain.AnswerRecord, len(questions))
	for _, q := range questions {
		answers[q.ID] = &domain.AnswerRecord{}
	}

	start := s.now().UnixMilli()
	s.sess.Phase = domain.PhaseInProgress
	s.sess.Config = cfg
	s.sess.Questions = questions
	s.sess.Answers = answers
	s.sess.Overall = nil
	s.sess.StartedAt = &start

	return s.persistLocked(ctx)
}

func (s *sessionService) UpdateAnswer(ctx context.Context, questionID, answer string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess.Phase != domain.PhaseInProgress {
		return nil, ErrInterviewNotActive
	}
	if s.sess.InReviewMode() {
		return nil, ErrAnswerLocked
	}
	if utf8.RuneCountInString(answer) > domain.AnswerMaxLen {
		return nil, ErrAnswerTooLong
	}

	rec, ok := s.sess.Answers[questionID]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	rec.Answer = answer

	return s.persistLocked(ctx)
}

// RequestFeedback fetches an AI critique for one answer. Requests are
// serialized per question: a second trigger while one is pending is rejected.
// A failed call leaves the feedback unset and is logged only.
func (s *sessionService) RequestFeedback(ctx context.Context, questionID string) (*domain.Session, error) {
	s.mu.Lock()
	if s.sess.Phase != domain.PhaseInProgress {
		s.mu.Unlock()
		return nil, ErrInterviewNotActive
	}
	question, ok := s.sess.Question(questionID)
	if !ok {
		s.mu.Unlock()
		return nil, ErrQuestionNotFound
	}
	rec := s.sess.Answers[questionID]
	if len(strings.TrimSpace(rec.Answer)) < 2 {
		s.mu.Unlock()
		return nil, ErrAnswerTooShort
	}
	if s.pending[questionID] {
		s.mu.Unlock()
		return nil, ErrFeedbackPending
	}
	s.pending[questionID] = true
	sessID := s.sess.ID
	questionText := question.Text
	answerText := rec.Answer
	s.mu.Unlock()

	feedback, err := s.genClient.GetSingleFeedback(ctx, questionText, answerText)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, questionID)

	if err != nil {
		log.Printf("feedback request failed for %s: %v", questionID, err)
		return s.sess.Clone(), nil
	}

	// Exit may have swapped the session while the call was in flight; a new
	// interview can reuse the same question ids, so the phase alone is not
	// enough to tell the replacement apart.
	if s.sess.ID != sessID || s.sess.Phase != domain.PhaseInProgress {
		return nil, ErrSessionStateConflict
	}
	rec, ok = s.sess.Answers[questionID]
	if !ok {
		return nil, ErrSessionStateConflict
	}
	rec.Feedback = feedback

	return s.persistLocked(ctx)
}

// ToggleModelAnswer flips the model-answer visibility flag. It never touches
// answer text or feedback and has no effect on scoring.
func (s *sessionService) ToggleModelAnswer(ctx context.Context, questionID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess.Phase != domain.PhaseInProgress {
		return nil, ErrInterviewNotActive
	}
	rec, ok := s.sess.Answers[questionID]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	rec.ShowModelAnswer = !rec.ShowModelAnswer

	return s.persistLocked(ctx)
}

// Submit closes the interview and requests the overall review. The session
// always reaches the results phase: a failed review call is replaced by a
// deterministic zero-score fallback so the attempt stays reviewable.
func (s *sessionService) Submit(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	if s.sess.Phase != domain.PhaseInProgress {
		s.mu.Unlock()
		return nil, ErrInterviewNotActive
	}
	if s.sess.InReviewMode() {
		s.mu.Unlock()
		return nil, ErrAnswerLocked
	}
	for _, q := range s.sess.Questions {
		if strings.TrimSpace(s.sess.Answers[q.ID].Answer) == "" {
			s.mu.Unlock()
			return nil, ErrUnansweredQuestions
		}
	}

	questions := make([]domain.Question, len(s.sess.Questions))
	copy(questions, s.sess.Questions)
	answers := make(map[string]string, len(s.sess.Answers))
	for id, rec := range s.sess.Answers {
		answers[id] = rec.Answer
	}
	startedAt := s.sess.StartedAt
	sessID := s.sess.ID
	s.mu.Unlock()

	duration := "N/A"
	if startedAt != nil {
		elapsed := (s.now().UnixMilli() - *startedAt) / 1000
		duration = formatDuration(elapsed)
	}

	overall, err := s.genClient.GetOverallReview(ctx, questions, answers)
	if err != nil {
		log.Printf("overall review failed: %v", err)
		overall = &domain.OverallFeedback{
			Score:        0,
			Summary:      fallbackSummary,
			Strengths:    []string{fallbackStrength},
			Improvements: []string{fallbackImprovement},
		}
	}
	overall.Duration = duration

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess.ID != sessID || s.sess.Phase != domain.PhaseInProgress {
		return nil, ErrSessionStateConflict
	}
	s.sess.Phase = domain.PhaseResults
	s.sess.Overall = overall

	return s.persistLocked(ctx)
}

// Review re-enters the in-progress view read-only, for inspecting past
// answers and feedback.
func (s *sessionService) Review(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess.Phase != domain.PhaseResults {
		return nil, ErrNoResults
	}
	s.sess.Phase = domain.PhaseInProgress

	return s.persistLocked(ctx)
}

// BackToResults leaves review mode and returns to the score report.
func (s *sessionService) BackToResults(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sess.InReviewMode() {
		return nil, ErrNoResults
	}
	s.sess.Phase = domain.PhaseResults

	return s.persistLocked(ctx)
}

// Retry restarts the same question set with cleared answers and a fresh timer.
func (s *sessionService) Retry(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess.Phase != domain.PhaseResults {
		return nil, ErrNoResults
	}

	answers := make(map[string]*domain.AnswerRecord, len(s.sess.Questions))
	for _, q := range s.sess.Questions {
		answers[q.ID] = &domain.AnswerRecord{}
	}

	start := s.now().UnixMilli()
	s.sess.Phase = domain.PhaseInProgress
	s.sess.Answers = answers
	s.sess.Overall = nil
	s.sess.StartedAt = &start

	return s.persistLocked(ctx)
}

// Exit discards the whole attempt and erases the persisted record.
func (s *sessionService) Exit(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}
	s.sess = domain.NewSession()
	s.pending = make(map[string]bool)

	return s.sess.Clone(), nil
}

func (s *sessionService) persistLocked(ctx context.Context) (*domain.Session, error) {
	if err := s.store.Save(ctx, s.sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return s.sess.Clone(), nil
}

func formatDuration(elapsedSeconds int64) string {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	return fmt.Sprintf("%d:%02d", elapsedSeconds/60, elapsedSeconds%60)
}
