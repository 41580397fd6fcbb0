package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/interviewgenius/server/internal/domain"
)

// sessionFileName is the single fixed storage namespace; only one session
// record is ever resident.
const sessionFileName = "interview_genius_session_v2.json"

type fileSessionStore struct {
	dir string
}

// NewFileSessionStore persists the session as a JSON file under dir. Saves go
// through a temp file and rename so a crashed write never leaves a partial
// record observable by Load.
func NewFileSessionStore(dir string) (domain.SessionStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session dir %s: %w", dir, err)
	}
	return &fileSessionStore{dir: dir}, nil
}

func (s *fileSessionStore) Load(ctx context.Context) (*domain.Session, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	return decodeSession(data), nil
}

func (s *fileSessionStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, sessionFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (s *fileSessionStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *fileSessionStore) path() string {
	return filepath.Join(s.dir, sessionFileName)
}
