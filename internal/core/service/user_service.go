package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dataprogramming/auth-service/internal/core/domain"
	"github.com/dataprogramming/auth-service/internal/core/ports"
)

// LoginLimiter abstracts the login attempt counter (Redis).
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
}

type userService struct {
	repo    ports.UserRepository
	tokens  ports.TokenService
	limiter LoginLimiter
	audit   ports.AuditSink
	log     zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	repo ports.UserRepository,
	tokens ports.TokenService,
	limiter LoginLimiter,
	audit ports.AuditSink,
	log zerolog.Logger,
) ports.UserService {
	return &userService{
		repo:    repo,
		tokens:  tokens,
		limiter: limiter,
		audit:   audit,
		log:     log,
	}
}

// Register creates an account after checking document-number uniqueness.
func (s *userService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || in.DocumentNumber == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByDocumentNumber(ctx, in.DocumentNumber); err == nil {
		s.log.Warn().Str("document_number", in.DocumentNumber).Msg("attempt to register an existing user")
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Username:       in.Username,
		PasswordHash:   string(hash),
		Role:           in.Role,
		Enabled:        true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	s.recordAudit(domain.AuditRegister, created.Username, "success")
	return created, nil
}

// Login verifies credentials and issues a token. An unknown username and a
// wrong password fail identically so the response never reveals which users
// exist. Over-limit attempts fail the same way.
func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, processing anyway")
		} else if !allowed {
			s.log.Warn().Str("username", username).Msg("login attempt limit exceeded")
			s.recordAudit(domain.AuditLogin, username, "rate_limited")
			return "", domain.ErrInvalidCredentials
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordAudit(domain.AuditLogin, username, "unknown_user")
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordAudit(domain.AuditLogin, username, "bad_password")
		return "", domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("username", username).Msg("user authenticated")
	s.recordAudit(domain.AuditLogin, username, "success")
	return signed, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) DeleteUserByID(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.recordAudit(domain.AuditDelete, id, "success")
	return nil
}

func (s *userService) recordAudit(action, username, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		Action:    action,
		Username:  username,
		Outcome:   outcome,
		Timestamp: time.Now().UTC(),
	})
}
