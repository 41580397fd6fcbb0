package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/interviewgenius/server/internal/domain"

	"github.com/redis/go-redis/v9"
)

const sessionKey = "interview_genius:session:v2"

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore keeps the session under a single fixed key with no
// expiration; it survives process restarts until Clear or overwrite.
func NewRedisSessionStore(client *redis.Client) domain.SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Load(ctx context.Context) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	return decodeSession(data), nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey, data, 0).Err()
}

func (s *redisSessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey).Err()
}
