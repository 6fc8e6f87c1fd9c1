package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verisalt/srp-auth-server/internal/config"
	"github.com/verisalt/srp-auth-server/internal/handlers"
	"github.com/verisalt/srp-auth-server/internal/mocks"
	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
	"github.com/verisalt/srp-auth-server/internal/router"
	"github.com/verisalt/srp-auth-server/internal/service"
)

const testJWTSecret = "test-secret"

func setupSessionApp(mockSessionService *mocks.MockSessionService) *echo.Echo {
	app := echo.New()
	cfg := &config.Config{JWTSecret: testJWTSecret}
	router.SetupSessionRoutes(app, handlers.NewSessionHandler(mockSessionService), cfg)
	return app
}

// issueToken returns a signed token and its session ID, the way a successful
// login would.
func issueToken(t *testing.T) (string, string) {
	t.Helper()
	tokenSvc := service.NewTokenService(testJWTSecret, time.Hour)
	token, sessionID, _, err := tokenSvc.GenerateToken("alice")
	require.NoError(t, err)
	return token, sessionID
}

func performAuthedRequest(app *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestSessionHandler_GetSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSessionService := new(mocks.MockSessionService)
		app := setupSessionApp(mockSessionService)
		token, sessionID := issueToken(t)

		session := &models.Session{
			SessionID: sessionID,
			Username:  "alice",
			Expiry:    time.Now().UTC().Add(time.Hour),
		}
		mockSessionService.On("GetSession", mock.Anything, sessionID).Return(session, nil).Once()

		rec := performAuthedRequest(app, http.MethodGet, "/api/auth/session", token)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got models.SessionInfoResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, sessionID, got.SessionID)
		assert.Equal(t, "alice", got.Username)
		mockSessionService.AssertExpectations(t)
	})

	t.Run("NoToken", func(t *testing.T) {
		mockSessionService := new(mocks.MockSessionService)
		app := setupSessionApp(mockSessionService)

		rec := performAuthedRequest(app, http.MethodGet, "/api/auth/session", "")

		// echo-jwt reports a missing token as a malformed request.
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSessionService.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})

	t.Run("SessionRevoked", func(t *testing.T) {
		mockSessionService := new(mocks.MockSessionService)
		app := setupSessionApp(mockSessionService)
		token, sessionID := issueToken(t)

		mockSessionService.On("GetSession", mock.Anything, sessionID).
			Return(nil, repository.ErrSessionNotFound).Once()

		rec := performAuthedRequest(app, http.MethodGet, "/api/auth/session", token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSessionHandler_Logout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSessionService := new(mocks.MockSessionService)
		app := setupSessionApp(mockSessionService)
		token, sessionID := issueToken(t)

		mockSessionService.On("Logout", mock.Anything, sessionID).Return(nil).Once()

		rec := performAuthedRequest(app, http.MethodPost, "/api/auth/logout", token)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSessionService.AssertExpectations(t)
	})

	t.Run("NoToken", func(t *testing.T) {
		mockSessionService := new(mocks.MockSessionService)
		app := setupSessionApp(mockSessionService)

		rec := performAuthedRequest(app, http.MethodPost, "/api/auth/logout", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSessionService.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})
}
