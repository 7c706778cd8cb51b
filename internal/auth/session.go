package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session identifier does not resolve.
var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionStore resolves session identifiers to user identifiers.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, sessionID string) (string, error)
	Destroy(ctx context.Context, sessionID string) error
}

// SessionManager keeps server-side sessions in Redis. A session is a uuid
// key holding the associated user id; resolving a session slides its TTL.
type SessionManager struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionManager constructs a Redis-backed session store.
func NewSessionManager(rdb *redis.Client, ttl time.Duration) *SessionManager {
	return &SessionManager{rdb: rdb, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("mk:session:%s", sessionID)
}

// Create stores a new session for the user and returns its identifier.
func (s *SessionManager) Create(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKey(sessionID), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Resolve returns the user id stored for the session and refreshes its TTL.
func (s *SessionManager) Resolve(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	_ = s.rdb.Expire(ctx, sessionKey(sessionID), s.ttl).Err()
	return userID, nil
}

// Destroy removes the session, used during logout.
func (s *SessionManager) Destroy(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
