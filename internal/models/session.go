package models

import (
	"time"
)

// Session represents an active user login session issued after a successful
// verification.
type Session struct {
	SessionID string    `json:"sessionId"` // Unique ID for this session (JWT ID claim)
	Username  string    `json:"username"`  // The user this session belongs to
	CreatedAt time.Time `json:"createdAt"` // When the session was created
	Expiry    time.Time `json:"expiry"`    // When the session expires
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().UTC().After(s.Expiry)
}
