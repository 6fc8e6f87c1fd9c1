package models

import "time"

// PendingLogin bridges a verified exchange and session issuance. It holds the
// proof the client must present to show it derived the same premaster secret;
// the proof hashes the secret itself, so it cannot be reconstructed from the
// session key the verify step returns.
//
// Like a challenge, a pending login is consumed exactly once by an atomic
// pop, whether or not the confirmation succeeds.
type PendingLogin struct {
	Username      string
	ExpectedProof string
	CreatedAt     time.Time
	Expiry        time.Time
}

// IsExpired reports whether the pending login is past its expiry.
func (p *PendingLogin) IsExpired() bool {
	return time.Now().UTC().After(p.Expiry)
}
