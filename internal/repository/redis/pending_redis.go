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

// RedisPendingLoginRepository implements PendingLoginRepository using Redis,
// so the verify and confirm steps may land on different instances. GETDEL
// gives the atomic pop and the key TTL enforces expiry server-side.
type RedisPendingLoginRepository struct {
	client *redis.Client
}

func makePendingKey(username string) string {
	return fmt.Sprintf("login_pending:%s", username)
}

// storedPendingLogin is the wire form of a pending login. The expected proof
// is secret-derived; it never appears in logs, only in the Redis value.
type storedPendingLogin struct {
	Username      string    `json:"username"`
	ExpectedProof string    `json:"proof"`
	CreatedAt     time.Time `json:"createdAt"`
	Expiry        time.Time `json:"expiry"`
}

func NewRedisPendingLoginRepository(client *redis.Client) *RedisPendingLoginRepository {
	return &RedisPendingLoginRepository{client: client}
}

// StorePendingLogin saves the pending login under the user's key, replacing
// any prior one. The key TTL matches the expiry.
func (r *RedisPendingLoginRepository) StorePendingLogin(ctx context.Context, pending *models.PendingLogin) error {
	ttl := time.Until(pending.Expiry)
	if ttl <= 0 {
		return r.DeletePendingLogin(ctx, pending.Username)
	}

	jsonData, err := json.Marshal(storedPendingLogin{
		Username:      pending.Username,
		ExpectedProof: pending.ExpectedProof,
		CreatedAt:     pending.CreatedAt,
		Expiry:        pending.Expiry,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal pending login: %w", err)
	}

	if err := r.client.Set(ctx, makePendingKey(pending.Username), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	return nil
}

// PopPendingLogin atomically fetches and deletes the pending login with
// GETDEL. The explicit expiry check covers clock skew between writer and
// Redis.
func (r *RedisPendingLoginRepository) PopPendingLogin(ctx context.Context, username string) (*models.PendingLogin, error) {
	jsonData, err := r.client.GetDel(ctx, makePendingKey(username)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrPendingLoginNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis GETDEL failed: %w", err)
	}

	var stored storedPendingLogin
	if err := json.Unmarshal(jsonData, &stored); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	pending := &models.PendingLogin{
		Username:      stored.Username,
		ExpectedProof: stored.ExpectedProof,
		CreatedAt:     stored.CreatedAt,
		Expiry:        stored.Expiry,
	}
	if pending.IsExpired() {
		return nil, repository.ErrPendingLoginNotFound
	}
	return pending, nil
}

// DeletePendingLogin removes the pending login for a username, if any.
func (r *RedisPendingLoginRepository) DeletePendingLogin(ctx context.Context, username string) error {
	if err := r.client.Del(ctx, makePendingKey(username)).Err(); err != nil {
		return fmt.Errorf("redis DEL failed: %w", err)
	}
	return nil
}
