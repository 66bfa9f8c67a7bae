package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dataprogramming/auth-service/internal/core/domain"
)

const defaultLifetime = 24 * time.Hour

// ErrNoSubject is returned by Issue when the user carries no username.
var ErrNoSubject = errors.New("token: user has no username")

// Config captures the process-wide token settings, loaded once at startup.
type Config struct {
	Secret   string
	Issuer   string
	Lifetime time.Duration
}

// Service signs and verifies bearer tokens with a symmetric key derived once
// from the configured secret. A changed secret requires a process restart.
// Issue and Verify are side-effect-free and safe for concurrent use.
type Service struct {
	key      []byte
	issuer   string
	lifetime time.Duration
}

func NewService(cfg Config) *Service {
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = defaultLifetime
	}
	return &Service{
		key:      []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		lifetime: lifetime,
	}
}

// Issue builds claims from the user snapshot and returns the compact signed
// token. Every call mints a fresh token id.
func (s *Service) Issue(user *domain.User) (string, error) {
	if user == nil || user.Username == "" {
		return "", ErrNoSubject
	}

	now := time.Now()
	enabled := user.Enabled
	claims := &Claims{
		Role:           user.Role,
		Enabled:        &enabled,
		DocumentType:   user.DocumentType,
		DocumentNumber: user.DocumentNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify parses and signature-checks a compact token and decodes its claims.
// It returns domain.ErrTokenExpired for a correctly signed but expired token
// and domain.ErrTokenInvalid for everything else (bad structure, wrong
// algorithm, wrong signature, wrong issuer, tampered payload).
func (s *Service) Verify(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	return claims, nil
}
