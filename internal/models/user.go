package models

import "math/big"

// Credential is the durable record created at registration: the salt the
// client combined with its password, and the verifier derived from both. The
// password itself never reaches the server, and a credential is never updated
// after creation.
type Credential struct {
	Username string   `json:"username"`
	Salt     string   `json:"-"` // Hex encoded salt 's'
	Verifier *big.Int `json:"-"` // Verifier 'v' in [0, N-1]
}
