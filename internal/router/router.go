package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/handler"
	"github.com/SaharBarak/BeenThere-sub000/internal/middleware"
)

// RegisterRoutes registers the routes that require no authentication.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints.  Register, login,
// refresh and logout live under /v1/auth and need no token; the profile
// endpoints live under /v1 behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("SEEKER", "OWNER"))
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)
	auth.POST("/logout-all", a.LogoutAll)
}
