package models

import "time"

// RegisterRequest is the input for user registration. Salt and verifier are
// derived client-side; no password crosses this boundary.
type RegisterRequest struct {
	Username string `json:"username"`
	Salt     string `json:"salt"`     // Hex encoded salt 's'
	Verifier string `json:"verifier"` // Hex encoded verifier 'v'
}

// LoginInitRequest is the input for the first step of the login exchange.
type LoginInitRequest struct {
	Username string `json:"username"`
}

// LoginInitResponse is the server's answer to step 1.
type LoginInitResponse struct {
	Salt    string `json:"s"` // Hex encoded salt
	ServerB string `json:"B"` // Hex encoded server ephemeral public value B
}

// LoginVerifyRequest carries the client's public ephemeral value in step 2.
type LoginVerifyRequest struct {
	Username string `json:"username"`
	ClientA  string `json:"A"` // Hex encoded client public value A
}

// LoginVerifyResponse answers step 2 with the hex encoded session key K.
// Receiving K proves nothing about the caller; a session is only issued once
// the client confirms with a proof over the premaster secret.
type LoginVerifyResponse struct {
	SharedKey string `json:"sharedKey"`
}

// LoginConfirmRequest carries the client's proof for the final step. The
// proof is H(PAD(A) || PAD(B) || PAD(S)) in hex, computable only by a client
// that derived the premaster secret S itself.
type LoginConfirmRequest struct {
	Username string `json:"username"`
	Proof    string `json:"proof"`
}

// LoginConfirmResponse is the session token issued after a valid proof.
type LoginConfirmResponse struct {
	SessionToken  string    `json:"token"`
	SessionExpiry time.Time `json:"tokenExpiry"`
}

// SessionInfoResponse describes the caller's active session.
type SessionInfoResponse struct {
	SessionID string    `json:"sessionId"`
	Username  string    `json:"username"`
	Expiry    time.Time `json:"expiry"`
}

// ErrorResponse standard error format
type ErrorResponse struct {
	Error string `json:"error"`
}
