package repository

import (
	"context"
	"errors"

	"github.com/verisalt/srp-auth-server/internal/models"
)

// ChallengeRepository holds the short-lived per-login state between the two
// steps of the exchange. At most one live challenge exists per username:
// storing overwrites any prior challenge, and popping removes the challenge
// in the same atomic step that reads it, so two racing verifications can
// never both observe the same private exponent.
type ChallengeRepository interface {
	// StoreChallenge saves the challenge for a username, replacing any
	// existing one.
	StoreChallenge(ctx context.Context, challenge *models.LoginChallenge) error

	// PopChallenge atomically reads and removes the challenge for a username.
	// It returns ErrChallengeNotFound if no challenge exists or the stored
	// one has expired.
	PopChallenge(ctx context.Context, username string) (*models.LoginChallenge, error)

	// DeleteChallenge removes the challenge for a username, if any.
	DeleteChallenge(ctx context.Context, username string) error
}

// ErrChallengeNotFound is returned when no live challenge exists for a
// username, either because none was issued or because it expired or was
// already consumed.
var ErrChallengeNotFound = errors.New("login challenge not found or expired")
