package models

import (
	"math/big"
	"time"
)

// LoginChallenge holds the server-side state of one login attempt: the
// private ephemeral exponent 'b' chosen at initiation. The public value B is
// recomputed from 'b' at verification time rather than stored, so the store
// carries no derived state that could drift.
//
// A challenge is consumed exactly once, by an atomic pop, whether or not the
// verification that follows succeeds.
type LoginChallenge struct {
	Username  string
	PrivateB  *big.Int
	CreatedAt time.Time
	Expiry    time.Time
}

// IsExpired reports whether the challenge is past its expiry.
func (c *LoginChallenge) IsExpired() bool {
	return time.Now().UTC().After(c.Expiry)
}
