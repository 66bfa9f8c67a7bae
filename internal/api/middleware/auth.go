package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dataprogramming/auth-service/internal/api/metrics"
	"github.com/dataprogramming/auth-service/internal/core/domain"
	"github.com/dataprogramming/auth-service/internal/core/ports"
)

const identityKey = "identity"

const bearerPrefix = "Bearer "

// Auth is the per-request authentication gate.
//
// A request without a Bearer authorization header passes through anonymous;
// rejecting it is the business of downstream authorization, not this gate. A
// request with a Bearer token either gets an Identity injected into its
// request-scoped context and continues, or is answered with an empty 401 and
// the chain stops. Every verification failure — expired, malformed, bad
// signature, or anything unexpected — takes the 401 path; no error escapes
// this middleware.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				return next(c)
			}

			claims, err := tokens.Verify(strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return c.NoContent(http.StatusUnauthorized)
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(identityKey, domain.Identity{
				Principal:   claims.Subject,
				Authorities: []string{claims.Authority()},
			})
			return next(c)
		}
	}
}

// IdentityFrom returns the identity injected by Auth, if the request carries one.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func verifyResult(err error) string {
	if errors.Is(err, domain.ErrTokenExpired) {
		return "expired"
	}
	return "invalid"
}
