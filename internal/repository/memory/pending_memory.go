package memory

import (
	"context"
	"sync"
	"time"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
)

// MemoryPendingLoginRepository implements PendingLoginRepository with an
// in-process map, with the same expiry handling as the challenge store:
// rejected on access, reclaimed by a background sweep.
type MemoryPendingLoginRepository struct {
	pending   map[string]*models.PendingLogin
	mutex     sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryPendingLoginRepository creates the repository and starts the
// expiry sweep. sweepInterval <= 0 disables the background sweep.
func NewMemoryPendingLoginRepository(sweepInterval time.Duration) *MemoryPendingLoginRepository {
	r := &MemoryPendingLoginRepository{
		pending: make(map[string]*models.PendingLogin),
		done:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go r.sweep(sweepInterval)
	}
	return r
}

// StorePendingLogin saves or replaces the pending login for a username.
func (r *MemoryPendingLoginRepository) StorePendingLogin(ctx context.Context, pending *models.PendingLogin) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.pending[pending.Username] = pending
	return nil
}

// PopPendingLogin reads and removes the pending login for a username in one
// critical section.
func (r *MemoryPendingLoginRepository) PopPendingLogin(ctx context.Context, username string) (*models.PendingLogin, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	pending, exists := r.pending[username]
	if !exists {
		return nil, repository.ErrPendingLoginNotFound
	}
	delete(r.pending, username)
	if pending.IsExpired() {
		return nil, repository.ErrPendingLoginNotFound
	}
	return pending, nil
}

// DeletePendingLogin removes the pending login for a username, if any.
func (r *MemoryPendingLoginRepository) DeletePendingLogin(ctx context.Context, username string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.pending, username)
	return nil
}

// Close stops the background sweep.
func (r *MemoryPendingLoginRepository) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

func (r *MemoryPendingLoginRepository) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			now := time.Now().UTC()
			r.mutex.Lock()
			for username, pending := range r.pending {
				if now.After(pending.Expiry) {
					delete(r.pending, username)
				}
			}
			r.mutex.Unlock()
		}
	}
}
