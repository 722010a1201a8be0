package middleware

import (
	"errors"
	"strings"

	"lynxhire/internal/domain/profile"
	"lynxhire/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxCallerKey = "caller"
	CtxEmailKey  = "email"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		caller, email, err := m.Authenticate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxCallerKey, caller)
		c.Locals(CtxEmailKey, email)

		return c.Next()
	}
}

// Optional attaches the caller when a valid token is present and lets
// anonymous requests through, so handlers can answer them with their own
// messages.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := BearerToken(c.Get("Authorization")); ok {
			if caller, email, err := m.Authenticate(token); err == nil {
				c.Locals(CtxCallerKey, caller)
				c.Locals(CtxEmailKey, email)
			}
		}
		return c.Next()
	}
}

// Authenticate validates an access token and returns its caller.
func (m *AuthMiddleware) Authenticate(token string) (profile.Caller, string, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return profile.Caller{}, "", err
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return profile.Caller{}, "", jwt.ErrTokenInvalid
	}

	role, _ := profile.ParseRole(claims.Role)
	return profile.Caller{ID: claims.UserID, Role: role}, claims.Email, nil
}

// RequireRole must run after Middleware.
func RequireRole(role profile.Role, message string) fiber.Handler {
	return func(c fiber.Ctx) error {
		caller, ok := CallerFrom(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if caller.Role != role {
			return NewAppError(fiber.StatusForbidden, message, nil, nil)
		}
		return c.Next()
	}
}

// CallerFrom returns the authenticated caller, or the zero caller.
func CallerFrom(c fiber.Ctx) (profile.Caller, bool) {
	caller, ok := c.Locals(CtxCallerKey).(profile.Caller)
	if !ok || !caller.Authenticated() {
		return profile.Caller{}, false
	}
	return caller, true
}

func EmailFrom(c fiber.Ctx) string {
	email, _ := c.Locals(CtxEmailKey).(string)
	return email
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
