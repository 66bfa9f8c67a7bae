package domain

import "errors"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
	RoleRead  = "READ"
	RoleWrite = "WRITE"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token has expired")
var ErrTokenInvalid = errors.New("invalid token")

// User models an account in the users collection. The password hash never
// leaves the process; API projections live in the handler layer.
type User struct {
	ID             string `json:"id"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Username       string `json:"username"`
	PasswordHash   string `json:"-"`
	Role           string `json:"role"`
	Enabled        bool   `json:"enabled"`
}

// ValidRole reports whether role belongs to the fixed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleRead, RoleWrite:
		return true
	}
	return false
}
