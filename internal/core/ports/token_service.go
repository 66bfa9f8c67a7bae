package ports

import (
	"github.com/dataprogramming/auth-service/internal/core/domain"
	"github.com/dataprogramming/auth-service/internal/token"
)

// TokenService issues and verifies signed bearer tokens.
//
// Verify reports failures through the domain sentinel errors: ErrTokenExpired
// when the token is well-formed and correctly signed but past its expiry, and
// ErrTokenInvalid for every other parse, signature, or claims failure.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(raw string) (*token.Claims, error)
}
