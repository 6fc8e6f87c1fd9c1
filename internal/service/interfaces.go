package service

import (
	"context"
	"time"

	"github.com/verisalt/srp-auth-server/internal/models"
)

// AuthProvider is the core of the password-verifier exchange: registration,
// challenge issuance, verification, and confirmation. Implementations never
// see a password and never log salts, verifiers, private exponents, or
// derived secrets.
type AuthProvider interface {
	// Register validates and persists a new credential. Re-registration of an
	// existing username always fails; there is no update path.
	Register(ctx context.Context, req models.RegisterRequest) error
	// InitiateLogin generates a fresh private exponent for the user, stores
	// it as the one live challenge, and returns the salt and public value B.
	InitiateLogin(ctx context.Context, req models.LoginInitRequest) (*models.LoginInitResponse, error)
	// VerifyLogin consumes the challenge and derives the shared session key
	// from the client's public value A. It proves nothing about the caller
	// and issues no session.
	VerifyLogin(ctx context.Context, req models.LoginVerifyRequest) (*models.LoginVerifyResponse, error)
	// ConfirmLogin checks the client's proof of the premaster secret and, on
	// a match, issues a session token.
	ConfirmLogin(ctx context.Context, req models.LoginConfirmRequest) (*models.LoginConfirmResponse, error)
}

// TokenGenerator issues and validates session tokens.
type TokenGenerator interface {
	// GenerateToken creates a token for a user and returns it together with
	// its unique session ID and expiry.
	GenerateToken(username string) (token string, sessionID string, expiry time.Time, err error)
	// ValidateToken checks a token and returns the username and session ID it
	// carries.
	ValidateToken(token string) (username string, sessionID string, err error)
}

// SessionManager exposes the session lookups behind the authenticated
// endpoints.
type SessionManager interface {
	// GetSession returns the live session with the given ID.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	// Logout removes the session with the given ID.
	Logout(ctx context.Context, sessionID string) error
}
