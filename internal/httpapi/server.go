// Package httpapi assembles the Fiber application: middleware, route table,
// and the handlers for auth, users, meals, and nutrition.
package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/nutritrack/nutritrack/internal/auth"
	"github.com/nutritrack/nutritrack/internal/auth/jwtware"
	"github.com/nutritrack/nutritrack/internal/config"
	"github.com/nutritrack/nutritrack/internal/repository"
)

// Server owns the Fiber app and its collaborators.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	repos  repository.Manager
	auther *auth.Authenticator
	tokens *auth.TokenService
	hasher auth.PasswordAuthenticator
	logger auth.Logger
}

// Option configures the Server.
type Option func(*Server)

func WithLogger(l auth.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds the app and registers every route.
func New(cfg *config.Config, repos repository.Manager, auther *auth.Authenticator, tokens *auth.TokenService, hasher auth.PasswordAuthenticator, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		repos:  repos,
		auther: auther,
		tokens: tokens,
		hasher: hasher,
		logger: auth.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "nutritrack",
		ErrorHandler: newErrorHandler(s.logger),
	})

	s.app.Use(requestid.New())
	s.app.Use(logger.New())
	s.app.Use(recover.New())

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	api.Post("/auth/signup", s.handleSignup)
	api.Post("/auth/signin", s.handleSignin)

	protected := jwtware.New(jwtware.Config{
		Validator:  s.tokens,
		ContextKey: jwtware.DefaultContextKey,
	})

	api.Get("/auth/me", protected, s.handleMe)

	// Legacy routes kept from the original API surface.
	api.Post("/users", s.handleCreateUser)
	api.Get("/users/:id", s.handleGetUser)

	api.Put("/users/profile", protected, s.handleUpdateProfile)

	api.Get("/meals/today", protected, s.handleTodayMeals)
	api.Post("/meals", protected, s.handleCreateMeal)

	api.Get("/nutrition", protected, s.handleListNutrition)
	api.Post("/nutrition", protected, s.handleCreateNutrition)
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the configured address.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.HTTPAddr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
