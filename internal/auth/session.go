package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/auroranet/portal-service/internal/domain"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound signals a missing or expired session token.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record an opaque token resolves to.
type Session struct {
	UserID    string            `json:"userId"`
	Role      domain.Role       `json:"role"`
	Status    domain.UserStatus `json:"status"`
	IssuedAt  time.Time         `json:"issuedAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// SessionStore keeps opaque session tokens in Redis.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds the store.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Issue creates a session for the user and returns the opaque token.
func (s *SessionStore) Issue(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := time.Now()
	session := Session{
		UserID:    user.ID,
		Role:      user.Role,
		Status:    user.Status,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return "", time.Time{}, err
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", time.Time{}, err
	}
	return token, session.ExpiresAt, nil
}

// Resolve maps an opaque token back to its session record.
func (s *SessionStore) Resolve(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Revoke deletes the session, logging the caller out.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
