package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
)

var _ SessionManager = (*SessionService)(nil)

// SessionService answers session lookups for the authenticated endpoints.
type SessionService struct {
	sessionRepo repository.SessionRepository
}

// NewSessionService creates a SessionService.
func NewSessionService(sessionRepo repository.SessionRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo}
}

// GetSession returns the live session with the given ID.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// Logout removes the session with the given ID. Logging out a session that
// no longer exists is not an error.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
