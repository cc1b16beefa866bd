package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionCookieName holds the opaque session ID when the Redis store is in use.
	SessionCookieName = "session_id"
	sessionKeyPrefix  = "web:session:" // web:session:{session_id} -> token
)

// RedisStore keeps the token server-side; the browser only sees a random
// session ID.
type RedisStore struct {
	client *redis.Client
	opts   CookieOptions
}

func NewRedisStore(client *redis.Client, opts CookieOptions) *RedisStore {
	return &RedisStore{client: client, opts: opts}
}

func (s *RedisStore) Token(ctx context.Context, r *http.Request) (string, error) {
	sessionID, ok := readCookie(r, SessionCookieName)
	if !ok {
		return "", ErrNoSession
	}

	token, err := s.client.Get(ctx, s.sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Save(ctx context.Context, w http.ResponseWriter, r *http.Request, token string) error {
	// Rotate on every login so an old cookie never maps to the new token.
	if old, ok := readCookie(r, SessionCookieName); ok {
		if err := s.client.Del(ctx, s.sessionKey(old)).Err(); err != nil {
			return fmt.Errorf("failed to delete previous session: %w", err)
		}
	}

	sessionID := uuid.New().String()
	if err := s.client.Set(ctx, s.sessionKey(sessionID), token, s.opts.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	writeCookie(w, SessionCookieName, sessionID, s.opts)
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	clearCookie(w, SessionCookieName, s.opts)

	sessionID, ok := readCookie(r, SessionCookieName)
	if !ok {
		return nil
	}
	if err := s.client.Del(ctx, s.sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
