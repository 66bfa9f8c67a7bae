package ports

import (
	"context"

	"github.com/dataprogramming/auth-service/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	DocumentType   string
	DocumentNumber string
	Username       string
	Password       string
	Role           string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	DeleteUserByID(ctx context.Context, id string) error
}
