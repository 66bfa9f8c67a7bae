// Package token owns the signed-token format: the claims payload, the HS256
// signing policy, and the expired-vs-invalid failure split that the middleware
// and handlers branch on.
package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/dataprogramming/auth-service/internal/core/domain"
)

// Claims is the signed token payload. The custom fields are a snapshot of the
// user taken at issuance time; a later change to the user record does not
// alter an already-issued token.
//
// Enabled is a pointer because tokens minted before the flag existed carry no
// "enabled" claim at all; decoding such a token leaves it nil.
type Claims struct {
	Role           string `json:"role"`
	Enabled        *bool  `json:"enabled,omitempty"`
	DocumentType   string `json:"documentType,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	jwt.RegisteredClaims
}

// IsEnabled resolves the optional enabled claim. Absence means enabled: old
// tokens predate the flag and were all issued to active accounts.
func (c *Claims) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Authority derives the single granted authority for this token's subject.
func (c *Claims) Authority() string {
	return domain.RolePrefix + c.Role
}

// User rebuilds a transient user snapshot from the claims alone. Used by
// refresh, which deliberately never consults the user store.
func (c *Claims) User() *domain.User {
	return &domain.User{
		Username:       c.Subject,
		Role:           c.Role,
		Enabled:        c.IsEnabled(),
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
	}
}
