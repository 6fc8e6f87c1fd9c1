package memory

import (
	"context"
	"sync"
	"time"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
)

// MemoryChallengeRepository implements ChallengeRepository with an in-process
// map. Expired entries are rejected on access and additionally reclaimed by a
// background sweep, so abandoned logins cannot grow the map without bound.
type MemoryChallengeRepository struct {
	challenges map[string]*models.LoginChallenge
	mutex      sync.Mutex
	done       chan struct{}
	closeOnce  sync.Once
}

// NewMemoryChallengeRepository creates the repository and starts the expiry
// sweep. sweepInterval <= 0 disables the background sweep; expiry is then
// enforced on access only.
func NewMemoryChallengeRepository(sweepInterval time.Duration) *MemoryChallengeRepository {
	r := &MemoryChallengeRepository{
		challenges: make(map[string]*models.LoginChallenge),
		done:       make(chan struct{}),
	}
	if sweepInterval > 0 {
		go r.sweep(sweepInterval)
	}
	return r
}

// StoreChallenge saves or replaces the challenge for a username. Overwriting
// invalidates any prior challenge for the same user.
func (r *MemoryChallengeRepository) StoreChallenge(ctx context.Context, challenge *models.LoginChallenge) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.challenges[challenge.Username] = challenge
	return nil
}

// PopChallenge reads and removes the challenge for a username in one critical
// section. Concurrent pops for the same username cannot both succeed.
func (r *MemoryChallengeRepository) PopChallenge(ctx context.Context, username string) (*models.LoginChallenge, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	challenge, exists := r.challenges[username]
	if !exists {
		return nil, repository.ErrChallengeNotFound
	}
	delete(r.challenges, username)
	if challenge.IsExpired() {
		return nil, repository.ErrChallengeNotFound
	}
	return challenge, nil
}

// DeleteChallenge removes the challenge for a username, if any.
func (r *MemoryChallengeRepository) DeleteChallenge(ctx context.Context, username string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.challenges, username)
	return nil
}

// Close stops the background sweep.
func (r *MemoryChallengeRepository) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

func (r *MemoryChallengeRepository) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			now := time.Now().UTC()
			r.mutex.Lock()
			for username, challenge := range r.challenges {
				if now.After(challenge.Expiry) {
					delete(r.challenges, username)
				}
			}
			r.mutex.Unlock()
		}
	}
}
