package handler

import (
	"github.com/dataprogramming/auth-service/internal/core/domain"
	"github.com/dataprogramming/auth-service/internal/core/ports"
	"github.com/dataprogramming/auth-service/internal/token"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Username:       req.UserName,
		Password:       req.Password,
		Role:           req.Role,
	}
}

// --- Domain → Response projections ---

func toRegisterResponse(u *domain.User) registerResponse {
	return registerResponse{
		ID:             u.ID,
		DocumentType:   u.DocumentType,
		DocumentNumber: u.DocumentNumber,
		UserName:       u.Username,
		Role:           u.Role,
		Enabled:        u.Enabled,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		UserName:       u.Username,
		DocumentNumber: u.DocumentNumber,
		Enabled:        u.Enabled,
	}
}

// toTokenData projects claims onto the validate/refresh payload. The token
// carried here is whichever compact token the caller wants to hand back: the
// presented one for validate, the freshly minted one for refresh.
func toTokenData(compact string, claims *token.Claims) *tokenData {
	return &tokenData{
		Token:    compact,
		Username: claims.Subject,
		Role:     claims.Role,
		Enabled:  claims.IsEnabled(),
	}
}
