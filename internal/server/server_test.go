package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/verisalt/srp-auth-server/internal/config"
	"github.com/verisalt/srp-auth-server/internal/server"
)

func TestServer_Health(t *testing.T) {
	app := server.New(&config.Config{CORSAllowedOrigins: []string{"*"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServer_CORSAllowListFromConfig(t *testing.T) {
	app := server.New(&config.Config{
		CORSAllowedOrigins: []string{"https://app.internal.test"},
	})

	t.Run("AllowedOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/health", nil)
		req.Header.Set(echo.HeaderOrigin, "https://app.internal.test")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		assert.Equal(t, "https://app.internal.test", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("OtherOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/health", nil)
		req.Header.Set(echo.HeaderOrigin, "https://evil.test")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}
