package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAuthority guards a route behind granted authorities. Requests that
// passed through Auth anonymously get 401; authenticated requests lacking all
// of the listed authorities get 403.
func RequireAuthority(authorities ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, a := range authorities {
				if identity.HasAuthority(a) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
