package handlers

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
	"github.com/verisalt/srp-auth-server/internal/service"
)

// SessionHandler serves the JWT-protected session endpoints.
type SessionHandler struct {
	SessionService service.SessionManager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionManager) *SessionHandler {
	return &SessionHandler{SessionService: sessionService}
}

// sessionIDFromContext extracts the session ID (jti claim) from the token the
// JWT middleware stored in the request context.
func sessionIDFromContext(c echo.Context) (string, error) {
	userContext := c.Get("user")
	if userContext == nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	token, ok := userContext.(*jwt.Token)
	if !ok {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "User context type mismatch")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims")
	}
	sessionID, ok := claims["jti"].(string)
	if !ok || sessionID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid token: session ID claim is missing")
	}
	return sessionID, nil
}

// GetSession returns the caller's active session.
func (h *SessionHandler) GetSession(c echo.Context) error {
	sessionID, err := sessionIDFromContext(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	session, err := h.SessionService.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Session expired or invalid")
		}
		log.Error().Err(err).Msg("Session lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Session lookup failed")
	}

	return c.JSON(http.StatusOK, models.SessionInfoResponse{
		SessionID: session.SessionID,
		Username:  session.Username,
		Expiry:    session.Expiry,
	})
}

// Logout removes the caller's session.
func (h *SessionHandler) Logout(c echo.Context) error {
	sessionID, err := sessionIDFromContext(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.SessionService.Logout(ctx, sessionID); err != nil {
		log.Error().Err(err).Msg("Logout failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Logout failed")
	}

	return c.NoContent(http.StatusOK)
}
