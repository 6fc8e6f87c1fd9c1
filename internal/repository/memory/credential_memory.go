package memory

import (
	"context"
	"sync"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
)

// MemoryCredentialRepository implements CredentialRepository in memory
// (NOT FOR PRODUCTION).
type MemoryCredentialRepository struct {
	credentials map[string]*models.Credential
	mutex       sync.RWMutex
}

func NewMemoryCredentialRepository() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{
		credentials: make(map[string]*models.Credential),
	}
}

// CreateCredential inserts the credential under the single write lock, so the
// existence check and the insert cannot interleave with a concurrent
// registration of the same username.
func (r *MemoryCredentialRepository) CreateCredential(ctx context.Context, cred *models.Credential) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.credentials[cred.Username]; exists {
		return repository.ErrUserExists
	}
	r.credentials[cred.Username] = cred
	return nil
}

func (r *MemoryCredentialRepository) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	cred, exists := r.credentials[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return cred, nil
}
