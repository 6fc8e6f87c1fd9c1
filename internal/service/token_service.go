package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ TokenGenerator = (*TokenService)(nil)

// TokenService issues HS256 JWTs whose ID claim doubles as the session ID.
type TokenService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewTokenService creates a TokenService.
func NewTokenService(secret string, tokenTTL time.Duration) *TokenService {
	return &TokenService{jwtSecret: []byte(secret), tokenTTL: tokenTTL}
}

// GenerateToken creates a new JWT for a user.
func (s *TokenService) GenerateToken(username string) (string, string, time.Time, error) {
	sessionID := uuid.NewString()
	now := time.Now().UTC()
	expiry := now.Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"sub": username,          // Subject (standard claim)
		"iss": "srp-auth-server", // Issuer (standard claim)
		"jti": sessionID,         // Token / session ID
		"exp": expiry.Unix(),     // Expiration time
		"iat": now.Unix(),        // Issued at
		"nbf": now.Unix(),        // Not before
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, sessionID, expiry, nil
}

// ValidateToken parses a token and returns the username and session ID.
func (s *TokenService) ValidateToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}
	username, ok := claims["sub"].(string)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}
	sessionID, ok := claims["jti"].(string)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}
	return username, sessionID, nil
}
