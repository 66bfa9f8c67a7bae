package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dataprogramming/auth-service/internal/api/metrics"
	"github.com/dataprogramming/auth-service/internal/core/domain"
	"github.com/dataprogramming/auth-service/internal/core/ports"
)

const (
	msgValidToken       = "Valid token"
	msgTokenRenewed     = "Token successfully renewed"
	msgTokenExpired     = "The token has expired"
	msgExpiredNoRefresh = "The token has expired, it cannot be refreshed"
	msgInvalidToken     = "Invalid token"
)

type AuthHandler struct {
	users  ports.UserService
	tokens ports.TokenService
	audit  ports.AuditSink
}

func NewAuthHandler(users ports.UserService, tokens ports.TokenService, audit ports.AuditSink) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, audit: audit}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   "A user with that document number already exists"
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.users.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return c.NoContent(http.StatusConflict)
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toRegisterResponse(user))
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   "Unknown user or wrong password"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	signed, err := h.users.Login(c.Request().Context(), req.UserName, req.Password)
	if err != nil {
		// Unknown user and wrong password are deliberately indistinguishable.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.NoContent(http.StatusUnauthorized)
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: signed})
}

// Validate checks a presented bearer token and echoes its claims.
//
// @Summary      Validate a token
// @Tags         auth
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer token"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  tokenResponse
// @Router       /auth/validate [post]
func (h *AuthHandler) Validate(c echo.Context) error {
	raw := extractToken(c)

	claims, err := h.tokens.Verify(raw)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
			h.recordAudit(domain.AuditValidate, "", "expired")
			return unauthorizedToken(c, msgTokenExpired)
		}
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		h.recordAudit(domain.AuditValidate, "", "invalid")
		return unauthorizedToken(c, msgInvalidToken)
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	h.recordAudit(domain.AuditValidate, claims.Subject, "success")
	return c.JSON(http.StatusOK, tokenResponse{
		Success: true,
		Message: msgValidToken,
		Data:    toTokenData(raw, claims),
	})
}

// Refresh verifies a presented token and issues a brand-new one from its
// claims alone. The user store is deliberately not consulted, so a disabled or
// deleted account can refresh a still-valid token; that gap is a recorded
// product decision, not an oversight.
//
// @Summary      Refresh a token
// @Tags         auth
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer token"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  tokenResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, err := h.tokens.Verify(extractToken(c))
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
			h.recordAudit(domain.AuditRefresh, "", "expired")
			return unauthorizedToken(c, msgExpiredNoRefresh)
		}
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		h.recordAudit(domain.AuditRefresh, "", "invalid")
		return unauthorizedToken(c, msgInvalidToken)
	}
	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

	renewed, err := h.tokens.Issue(claims.User())
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	h.recordAudit(domain.AuditRefresh, claims.Subject, "success")
	return c.JSON(http.StatusOK, tokenResponse{
		Success: true,
		Message: msgTokenRenewed,
		Data:    toTokenData(renewed, claims),
	})
}

// ListUsers returns the public projection of every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  userResponse
// @Router       /auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// GetUser returns a single account projection by id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  "No user with that id"
// @Router       /auth/users/{id} [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	user, err := h.users.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser removes an account by id.
//
// @Summary      Delete a user by id
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204  "Deleted"
// @Failure      404  "No user with that id"
// @Router       /auth/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if err := h.users.DeleteUserByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.Logger().Warnf("attempt to delete non-existing user %s by %s", id, principalFrom(c))
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// extractToken strips the Bearer scheme from the Authorization header. The
// raw remainder goes to Verify, which treats garbage as an invalid token.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimPrefix(header, "Bearer ")
}

func unauthorizedToken(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, tokenResponse{Success: false, Message: message})
}

// recordAudit enqueues a token operation outcome. A failed verification leaves
// the username empty: the claims of a rejected token are not to be trusted.
func (h *AuthHandler) recordAudit(action, username, outcome string) {
	if h.audit == nil {
		return
	}
	h.audit.Enqueue(domain.AuditEvent{
		Action:    action,
		Username:  username,
		Outcome:   outcome,
		Timestamp: time.Now().UTC(),
	})
}
