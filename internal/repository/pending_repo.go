package repository

import (
	"context"
	"errors"

	"github.com/verisalt/srp-auth-server/internal/models"
)

// PendingLoginRepository holds the state between a verified exchange and the
// client's proof of the premaster secret. The same rules as challenges apply:
// one live pending login per username, storing overwrites, and popping reads
// and removes in one atomic step so a proof attempt is spent exactly once.
type PendingLoginRepository interface {
	// StorePendingLogin saves the pending login for a username, replacing any
	// existing one.
	StorePendingLogin(ctx context.Context, pending *models.PendingLogin) error

	// PopPendingLogin atomically reads and removes the pending login for a
	// username. It returns ErrPendingLoginNotFound if none exists or the
	// stored one has expired.
	PopPendingLogin(ctx context.Context, username string) (*models.PendingLogin, error)

	// DeletePendingLogin removes the pending login for a username, if any.
	DeletePendingLogin(ctx context.Context, username string) error
}

// ErrPendingLoginNotFound is returned when no live pending login exists for
// a username, either because verification never ran or because it expired or
// was already consumed.
var ErrPendingLoginNotFound = errors.New("pending login not found or expired")
