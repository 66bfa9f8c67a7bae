package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/dataprogramming/auth-service/internal/api/middleware"
)

// principalFrom returns the authenticated principal for audit logging, or
// "anonymous" when the request carried no verifiable bearer token.
func principalFrom(c echo.Context) string {
	if identity, ok := middleware.IdentityFrom(c); ok {
		return identity.Principal
	}
	return "anonymous"
}
