// Package jwtware provides the bearer token gate applied to protected routes.
package jwtware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nutritrack/nutritrack/internal/auth"
)

// DefaultContextKey is where validated claims are stored on the request.
const DefaultContextKey = "auth_claims"

const authScheme = "Bearer"

// TokenValidator verifies a raw token and returns its claims. It mirrors
// auth.TokenService.Validate without importing the concrete type.
type TokenValidator interface {
	Validate(raw string) (*auth.Claims, error)
}

type Config struct {
	// Validator is required.
	Validator TokenValidator

	// ContextKey is the Locals key claims are stored under. Defaults to
	// DefaultContextKey.
	ContextKey string

	// Filter skips the gate for matching requests.
	Filter func(*fiber.Ctx) bool

	// ErrorHandler receives missing-token and validation failures. The
	// default passes the error to the app error handler.
	ErrorHandler fiber.ErrorHandler
}

// New returns the token-gate middleware: absent bearer tokens fail with 401,
// invalid ones with 403, valid claims land in c.Locals under ContextKey.
func New(cfg Config) fiber.Handler {
	if cfg.Validator == nil {
		panic("jwtware: Config.Validator is required")
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return err
		}
	}

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := TokenFromHeader(c)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.Validator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		return c.Next()
	}
}

// TokenFromHeader extracts the raw token from the Authorization header.
func TokenFromHeader(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) || parts[1] == "" {
		return "", auth.ErrMissingToken
	}

	return parts[1], nil
}

// ClaimsFromContext returns the claims the gate stored for this request.
func ClaimsFromContext(c *fiber.Ctx, key string) (*auth.Claims, error) {
	if key == "" {
		key = DefaultContextKey
	}

	raw := c.Locals(key)
	if raw == nil {
		return nil, auth.ErrMissingToken
	}

	claims, ok := raw.(*auth.Claims)
	if !ok {
		return nil, auth.ErrTokenMalformed
	}

	return claims, nil
}
