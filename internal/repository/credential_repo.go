package repository

import (
	"context"
	"errors"

	"github.com/verisalt/srp-auth-server/internal/models"
)

// CredentialRepository defines operations for storing and retrieving user
// credentials. Credentials are write-once: there is no update path, and
// re-registration of an existing username always fails.
type CredentialRepository interface {
	// CreateCredential stores the credential if and only if the username is
	// not already taken. The existence check and the insert are a single
	// atomic operation; it returns ErrUserExists when the username is taken.
	CreateCredential(ctx context.Context, cred *models.Credential) error

	// GetCredential retrieves the credential for a username.
	// It returns ErrUserNotFound if the user does not exist.
	GetCredential(ctx context.Context, username string) (*models.Credential, error)
}

// Common errors
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
