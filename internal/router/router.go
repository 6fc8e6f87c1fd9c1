package router

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/verisalt/srp-auth-server/internal/config"
	"github.com/verisalt/srp-auth-server/internal/handlers"
)

// SetupAuthRoutes registers the operations of the verifier exchange.
func SetupAuthRoutes(app *echo.Echo, authHandler *handlers.AuthHandler) {
	api := app.Group("/api/auth/srp")

	api.POST("/register", authHandler.Register)            // Credential registration
	api.POST("/login/initiate", authHandler.LoginInitiate) // Step 1 (client sends username)
	api.POST("/login/verify", authHandler.LoginVerify)     // Step 2 (client sends A)
	api.POST("/login/confirm", authHandler.LoginConfirm)   // Step 3 (client proves the secret)
}

// SetupSessionRoutes registers the JWT-protected session endpoints.
func SetupSessionRoutes(app *echo.Echo, sessionHandler *handlers.SessionHandler, cfg *config.Config) {
	api := app.Group("/api/auth")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	api.GET("/session", sessionHandler.GetSession)
	api.POST("/logout", sessionHandler.Logout)
}
