package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
	"github.com/verisalt/srp-auth-server/internal/srpgroup"
)

var _ AuthProvider = (*AuthService)(nil)

// Input errors reported to the caller, never retried.
var (
	ErrMissingField      = errors.New("required field is missing or empty")
	ErrInvalidVerifier   = errors.New("verifier is not an integer in [0, N-1]")
	ErrInvalidParameters = errors.New("invalid authentication parameters")
	ErrProofMismatch     = errors.New("client proof does not match")
)

// AuthService implements the server side of the password-verifier exchange.
// It holds no mutable state of its own; all shared state lives behind the
// injected repositories, so the operations are safe under arbitrary
// interleavings.
type AuthService struct {
	credRepo      repository.CredentialRepository
	challengeRepo repository.ChallengeRepository
	pendingRepo   repository.PendingLoginRepository
	sessionRepo   repository.SessionRepository
	tokenSvc      TokenGenerator
	group         *srpgroup.Group
	challengeTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	credRepo repository.CredentialRepository,
	challengeRepo repository.ChallengeRepository,
	pendingRepo repository.PendingLoginRepository,
	sessionRepo repository.SessionRepository,
	tokenSvc TokenGenerator,
	group *srpgroup.Group,
	challengeTTL time.Duration,
) *AuthService {
	return &AuthService{
		credRepo:      credRepo,
		challengeRepo: challengeRepo,
		pendingRepo:   pendingRepo,
		sessionRepo:   sessionRepo,
		tokenSvc:      tokenSvc,
		group:         group,
		challengeTTL:  challengeTTL,
	}
}

// Register validates and persists a new credential. The verifier arrives hex
// encoded and must be an integer in [0, N-1]; the salt is opaque to the
// server. The existence check and insert are atomic inside the repository.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	if req.Username == "" || req.Salt == "" || req.Verifier == "" {
		return fmt.Errorf("username, salt and verifier are required: %w", ErrMissingField)
	}

	verifier, ok := new(big.Int).SetString(req.Verifier, 16)
	if !ok || verifier.Sign() < 0 || verifier.Cmp(s.group.N) >= 0 {
		return fmt.Errorf("verifier for user %q rejected: %w", req.Username, ErrInvalidVerifier)
	}

	cred := &models.Credential{
		Username: req.Username,
		Salt:     req.Salt,
		Verifier: verifier,
	}
	if err := s.credRepo.CreateCredential(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return err
		}
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// InitiateLogin performs step 1 of the exchange: draw a fresh private
// exponent b uniformly from [1, N-2], compute B = g^b mod N, store b as the
// single live challenge for the user, and return the salt and B. A repeated
// initiation overwrites the prior challenge.
func (s *AuthService) InitiateLogin(ctx context.Context, req models.LoginInitRequest) (*models.LoginInitResponse, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required: %w", ErrMissingField)
	}

	cred, err := s.credRepo.GetCredential(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	b, err := s.randomExponent()
	if err != nil {
		return nil, fmt.Errorf("failed to generate private exponent: %w", err)
	}
	B := new(big.Int).Exp(s.group.G, b, s.group.N)

	now := time.Now().UTC()
	challenge := &models.LoginChallenge{
		Username:  req.Username,
		PrivateB:  b,
		CreatedAt: now,
		Expiry:    now.Add(s.challengeTTL),
	}
	if err := s.challengeRepo.StoreChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store login challenge: %w", err)
	}

	return &models.LoginInitResponse{
		Salt:    cred.Salt,
		ServerB: B.Text(16),
	}, nil
}

// VerifyLogin performs step 2. The challenge is popped atomically before any
// cryptographic work and is consumed exactly once whether or not the
// verification succeeds; a failed attempt requires a fresh InitiateLogin.
//
// The returned key says nothing about the caller: anyone holding a live
// challenge receives the server's K. No session exists until ConfirmLogin
// checks a proof over the premaster secret, which the caller cannot derive
// from K.
func (s *AuthService) VerifyLogin(ctx context.Context, req models.LoginVerifyRequest) (*models.LoginVerifyResponse, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required: %w", ErrInvalidParameters)
	}
	A, ok := new(big.Int).SetString(req.ClientA, 16)
	if !ok || A.Sign() <= 0 {
		return nil, fmt.Errorf("client public value must be a positive integer: %w", ErrInvalidParameters)
	}

	cred, err := s.credRepo.GetCredential(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	challenge, err := s.challengeRepo.PopChallenge(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to pop login challenge: %w", err)
	}

	// B is recomputed from b rather than stored, so the challenge store holds
	// nothing the computation could drift from.
	B := new(big.Int).Exp(s.group.G, challenge.PrivateB, s.group.N)

	// A ≡ 0 (mod N) would force S to zero regardless of the password.
	if new(big.Int).Mod(A, s.group.N).Sign() == 0 {
		return nil, fmt.Errorf("client public value is a multiple of the modulus: %w", ErrInvalidParameters)
	}

	u := s.computeScrambler(A, B)

	// S = (A * v^u)^b mod N
	S := new(big.Int).Exp(cred.Verifier, u, s.group.N)
	S.Mul(S, A)
	S.Mod(S, s.group.N)
	S.Exp(S, challenge.PrivateB, s.group.N)

	keyDigest := sha256.Sum256(s.group.Pad(S))
	sharedKey := hex.EncodeToString(keyDigest[:])

	now := time.Now().UTC()
	pending := &models.PendingLogin{
		Username:      req.Username,
		ExpectedProof: s.computeClientProof(A, B, S),
		CreatedAt:     now,
		Expiry:        now.Add(s.challengeTTL),
	}
	if err := s.pendingRepo.StorePendingLogin(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to store pending login: %w", err)
	}

	return &models.LoginVerifyResponse{
		SharedKey: sharedKey,
	}, nil
}

// ConfirmLogin performs the final step: the client presents its proof over
// the premaster secret and, on a match, a session is created and a token
// issued. The pending login is popped atomically and spent exactly once; a
// failed proof requires restarting from InitiateLogin.
func (s *AuthService) ConfirmLogin(ctx context.Context, req models.LoginConfirmRequest) (*models.LoginConfirmResponse, error) {
	if req.Username == "" || req.Proof == "" {
		return nil, fmt.Errorf("username and proof are required: %w", ErrMissingField)
	}

	pending, err := s.pendingRepo.PopPendingLogin(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrPendingLoginNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to pop pending login: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(pending.ExpectedProof), []byte(req.Proof)) != 1 {
		return nil, fmt.Errorf("confirmation for user %q rejected: %w", req.Username, ErrProofMismatch)
	}

	token, sessionID, tokenExpiry, err := s.tokenSvc.GenerateToken(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	session := &models.Session{
		SessionID: sessionID,
		Username:  req.Username,
		CreatedAt: time.Now().UTC(),
		Expiry:    tokenExpiry,
	}
	if err := s.sessionRepo.StoreSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &models.LoginConfirmResponse{
		SessionToken:  token,
		SessionExpiry: tokenExpiry,
	}, nil
}

// randomExponent draws b uniformly from [1, N-2] using crypto/rand.
func (s *AuthService) randomExponent() (*big.Int, error) {
	max := new(big.Int).Sub(s.group.N, big.NewInt(2))
	b, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, err
	}
	return b.Add(b, big.NewInt(1)), nil
}

// computeScrambler derives u = H(PAD(A) || PAD(B)) mod N. Both values are
// padded to the modulus width so client and server hash the same bytes
// regardless of leading zeros.
func (s *AuthService) computeScrambler(A, B *big.Int) *big.Int {
	h := sha256.New()
	h.Write(s.group.Pad(A))
	h.Write(s.group.Pad(B))
	u := new(big.Int).SetBytes(h.Sum(nil))
	return u.Mod(u, s.group.N)
}

// computeClientProof derives hex(H(PAD(A) || PAD(B) || PAD(S))). Hashing S
// rather than K keeps the proof unforgeable by a caller who only saw the
// verify response: K is a hash of PAD(S) and does not reveal S.
func (s *AuthService) computeClientProof(A, B, S *big.Int) string {
	h := sha256.New()
	h.Write(s.group.Pad(A))
	h.Write(s.group.Pad(B))
	h.Write(s.group.Pad(S))
	return hex.EncodeToString(h.Sum(nil))
}
