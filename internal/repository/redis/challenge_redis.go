package redis

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
)

// RedisChallengeRepository implements ChallengeRepository using Redis, for
// deployments where login steps 1 and 2 may land on different instances.
// GETDEL gives the atomic read-and-remove the pop requires, and the key TTL
// enforces expiry server-side.
type RedisChallengeRepository struct {
	client *redis.Client
}

func makeChallengeKey(username string) string {
	return fmt.Sprintf("login_challenge:%s", username)
}

// storedChallenge is the wire form of a challenge. The private exponent is
// hex encoded; it never appears in logs, only in the Redis value itself.
type storedChallenge struct {
	Username  string    `json:"username"`
	PrivateB  string    `json:"b"`
	CreatedAt time.Time `json:"createdAt"`
	Expiry    time.Time `json:"expiry"`
}

func NewRedisChallengeRepository(client *redis.Client) *RedisChallengeRepository {
	return &RedisChallengeRepository{client: client}
}

// StoreChallenge saves the challenge under the user's key, replacing any
// prior one. The key TTL matches the challenge expiry.
func (r *RedisChallengeRepository) StoreChallenge(ctx context.Context, challenge *models.LoginChallenge) error {
	ttl := time.Until(challenge.Expiry)
	if ttl <= 0 {
		return r.DeleteChallenge(ctx, challenge.Username)
	}

	jsonData, err := json.Marshal(storedChallenge{
		Username:  challenge.Username,
		PrivateB:  challenge.PrivateB.Text(16),
		CreatedAt: challenge.CreatedAt,
		Expiry:    challenge.Expiry,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	if err := r.client.Set(ctx, makeChallengeKey(challenge.Username), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	return nil
}

// PopChallenge atomically fetches and deletes the challenge with GETDEL.
// Expired keys are gone by TTL; the explicit expiry check covers clock skew
// between the writer and Redis.
func (r *RedisChallengeRepository) PopChallenge(ctx context.Context, username string) (*models.LoginChallenge, error) {
	jsonData, err := r.client.GetDel(ctx, makeChallengeKey(username)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis GETDEL failed: %w", err)
	}

	var stored storedChallenge
	if err := json.Unmarshal(jsonData, &stored); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	b, ok := new(big.Int).SetString(stored.PrivateB, 16)
	if !ok {
		return nil, fmt.Errorf("stored challenge for %q holds malformed exponent", username)
	}

	challenge := &models.LoginChallenge{
		Username:  stored.Username,
		PrivateB:  b,
		CreatedAt: stored.CreatedAt,
		Expiry:    stored.Expiry,
	}
	if challenge.IsExpired() {
		return nil, repository.ErrChallengeNotFound
	}
	return challenge, nil
}

// DeleteChallenge removes the challenge for a username, if any.
func (r *RedisChallengeRepository) DeleteChallenge(ctx context.Context, username string) error {
	if err := r.client.Del(ctx, makeChallengeKey(username)).Err(); err != nil {
		return fmt.Errorf("redis DEL failed: %w", err)
	}
	return nil
}
