package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
)

// RedisSessionRepository implements SessionRepository using Redis.
type RedisSessionRepository struct {
	client *redis.Client
}

// Helper to construct session key
func makeSessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func NewRedisSessionRepository(client *redis.Client) repository.SessionRepository {
	return &RedisSessionRepository{
		client: client,
	}
}

// StoreSession saves the session data with a TTL matching its expiry.
func (r *RedisSessionRepository) StoreSession(ctx context.Context, session *models.Session) error {
	if session == nil || session.SessionID == "" || session.Username == "" {
		return fmt.Errorf("invalid session data: sessionID and username must be set")
	}

	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.Expiry)
	if ttl <= 0 {
		return r.DeleteSession(ctx, session.SessionID)
	}

	if err := r.client.Set(ctx, makeSessionKey(session.SessionID), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	return nil
}

// GetSession retrieves a session by its ID from Redis.
// It returns ErrSessionNotFound if the session doesn't exist or is expired
// (handled by Redis TTL). It also performs an additional check on the
// deserialized session's IsExpired() method.
func (r *RedisSessionRepository) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	jsonData, err := r.client.Get(ctx, makeSessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET failed: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(jsonData, &session); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if session.IsExpired() {
		_ = r.client.Del(ctx, makeSessionKey(sessionID)).Err()
		return nil, repository.ErrSessionNotFound
	}

	return &session, nil
}

// DeleteSession removes a session.
func (r *RedisSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, makeSessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis DEL failed: %w", err)
	}
	return nil
}
