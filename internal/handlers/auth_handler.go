package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
	"github.com/verisalt/srp-auth-server/internal/service"
)

// AuthHandler maps the operations of the password-verifier exchange
// onto HTTP. It owns the mapping from the core's error taxonomy to status
// codes; the core itself knows nothing about HTTP. Nothing secret is ever
// logged here: usernames and outcomes only.
type AuthHandler struct {
	AuthService service.AuthProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthProvider) *AuthHandler {
	return &AuthHandler{AuthService: authService}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(c echo.Context) error {
	req := new(models.RegisterRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()

	if err := h.AuthService.Register(ctx, *req); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			return echo.NewHTTPError(http.StatusBadRequest, "Username, salt, and verifier are required")
		case errors.Is(err, service.ErrInvalidVerifier):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid verifier value")
		case errors.Is(err, repository.ErrUserExists):
			return echo.NewHTTPError(http.StatusConflict, "Username already exists")
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Registration failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Registration failed")
	}

	log.Info().Str("username", req.Username).Msg("User registered")
	return c.NoContent(http.StatusCreated)
}

// LoginInitiate handles step 1 of the login exchange: the client sends its
// username, the server answers with the salt and its public value B.
func (h *AuthHandler) LoginInitiate(c echo.Context) error {
	req := new(models.LoginInitRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()

	resp, err := h.AuthService.InitiateLogin(ctx, *req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			return echo.NewHTTPError(http.StatusBadRequest, "Username is required")
		case errors.Is(err, repository.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Login initiation failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Login initiation failed")
	}

	return c.JSON(http.StatusOK, resp)
}

// LoginVerify handles step 2: the client sends its public value A and the
// server answers with the derived session key. No session is issued here;
// the client must still confirm with its proof.
func (h *AuthHandler) LoginVerify(c echo.Context) error {
	req := new(models.LoginVerifyRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()

	resp, err := h.AuthService.VerifyLogin(ctx, *req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidParameters):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid parameters")
		case errors.Is(err, repository.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		case errors.Is(err, repository.ErrChallengeNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, "Session expired or invalid")
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Login verification failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Login verification failed")
	}

	log.Info().Str("username", req.Username).Msg("Login verified")
	return c.JSON(http.StatusOK, resp)
}

// LoginConfirm handles the final step: the client proves it derived the
// premaster secret and receives a session token.
func (h *AuthHandler) LoginConfirm(c echo.Context) error {
	req := new(models.LoginConfirmRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()

	resp, err := h.AuthService.ConfirmLogin(ctx, *req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			return echo.NewHTTPError(http.StatusBadRequest, "Username and proof are required")
		case errors.Is(err, repository.ErrPendingLoginNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, "Session expired or invalid")
		case errors.Is(err, service.ErrProofMismatch):
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed")
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Login confirmation failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Login confirmation failed")
	}

	log.Info().Str("username", req.Username).Msg("Login confirmed, session issued")
	return c.JSON(http.StatusOK, resp)
}
