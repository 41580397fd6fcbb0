package repository

import (
	"encoding/json"

	"github.com/interviewgenius/server/internal/domain"
)

// decodeSession turns a persisted record back into a session. Anything that
// does not decode into a structurally sound session — corrupt JSON, an
// unknown phase, or a record from an older schema that no longer upholds the
// questions/answers pairing — is treated as absent, never surfaced as an
// error or a half-built session.
func decodeSession(data []byte) *domain.Session {
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil
	}
	if !validPhase(session.Phase) {
		return nil
	}

	if session.Phase == domain.PhaseConfiguring {
		return &session
	}

	// Past configuring there must be questions, and every question must own
	// an answer record; the state machine indexes Answers by question id
	// without further checks.
	if len(session.Questions) == 0 {
		return nil
	}
	for _, q := range session.Questions {
		rec, ok := session.Answers[q.ID]
		if !ok || rec == nil {
			return nil
		}
	}

	return &session
}

func validPhase(p domain.Phase) bool {
	switch p {
	case domain.PhaseConfiguring, domain.PhaseInProgress, domain.PhaseResults:
		return true
	}
	return false
}
