package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dataprogramming/auth-service/internal/core/domain"
	"github.com/dataprogramming/auth-service/internal/core/ports"
	"github.com/dataprogramming/auth-service/internal/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by username
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByDocumentNumber(_ context.Context, documentNumber string) (*domain.User, error) {
	for _, u := range r.users {
		if u.DocumentNumber == documentNumber {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = strconv.Itoa(r.nextID)
	r.users[copy.Username] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	for name, u := range r.users {
		if u.ID == id {
			delete(r.users, name)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	l.calls++
	return l.allowed, l.err
}

func newTestTokens() ports.TokenService {
	return token.NewService(token.Config{Secret: "test-secret-at-least-32-bytes-long!!", Issuer: "TestIssuer", Lifetime: time.Hour})
}

func newTestService(repo ports.UserRepository, limiter LoginLimiter) ports.UserService {
	return NewUserService(repo, newTestTokens(), limiter, nil, zerolog.Nop())
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		DocumentType:   "DNI",
		DocumentNumber: "12345678",
		Username:       "alice",
		Password:       "s3cret",
		Role:           domain.RoleUser,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if !user.Enabled {
		t.Fatalf("expected new user to be enabled")
	}
	if user.PasswordHash == "s3cret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	in := registerInput()
	in.Username = ""
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}

	in = registerInput()
	in.Role = "SUPERUSER"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestUserService_Register_DuplicateDocumentNumber(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	in := registerInput()
	in.Username = "alice2"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected no duplicate record, have %d", len(repo.users))
	}
}

func TestUserService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	signed, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := newTestTokens().Verify(signed)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: subject=%s role=%s", claims.Subject, claims.Role)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	_, _ = svc.Register(context.Background(), registerInput())
	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Login_UnknownUserIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	_, _ = svc.Register(context.Background(), registerInput())

	_, wrongPass := svc.Login(context.Background(), "alice", "wrong")
	_, unknown := svc.Login(context.Background(), "bob", "anything")
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknown)
	}
	if !errors.Is(wrongPass, unknown) && wrongPass.Error() != unknown.Error() {
		t.Fatalf("unknown-user and wrong-password failures differ: %v vs %v", unknown, wrongPass)
	}
}

func TestUserService_Login_RateLimited(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: false}
	svc := newTestService(repo, limiter)

	_, _ = svc.Register(context.Background(), registerInput())
	if _, err := svc.Login(context.Background(), "alice", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials when limited, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", limiter.calls)
	}
}

func TestUserService_Login_LimiterFailureIsNonFatal(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{err: errors.New("redis down")}
	svc := newTestService(repo, limiter)

	_, _ = svc.Register(context.Background(), registerInput())
	if _, err := svc.Login(context.Background(), "alice", "s3cret"); err != nil {
		t.Fatalf("expected login to proceed past a failing limiter, got %v", err)
	}
}

func TestUserService_DeleteUserByID(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	created, _ := svc.Register(context.Background(), registerInput())
	if err := svc.DeleteUserByID(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteUserByID(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
