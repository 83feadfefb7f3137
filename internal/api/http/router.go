package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shopstack/auth-platform/internal/api/http/handlers"
	"github.com/shopstack/auth-platform/internal/auth"
)

// AuthRouteConfig bundles dependencies for the auth service routes.
type AuthRouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
}

// RegisterAuthRoutes wires the auth service endpoints.
func RegisterAuthRoutes(app *fiber.App, cfg AuthRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Get("/validate", cfg.Auth.Validate)
	app.Post("/refresh", cfg.Auth.Refresh)
	app.Post("/logout", cfg.Auth.Logout)
}

// UserRouteConfig bundles dependencies for the user service routes.
type UserRouteConfig struct {
	Health       *handlers.HealthHandler
	Users        *handlers.UsersHandler
	TokenManager *auth.TokenManager
}

// RegisterUserRoutes wires the user service endpoints.
func RegisterUserRoutes(app *fiber.App, cfg UserRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Users.Register)

	protected := app.Group("", auth.RequireAuth(cfg.TokenManager))
	protected.Get("/users", cfg.Users.List)
	protected.Get("/profile", cfg.Users.Profile)
	protected.Put("/profile", cfg.Users.UpdateProfile)
}

// BackendRouteConfig bundles dependencies for the backend service routes.
type BackendRouteConfig struct {
	Health       *handlers.HealthHandler
	Backend      *handlers.BackendHandler
	TokenManager *auth.TokenManager
}

// RegisterBackendRoutes wires the backend service endpoints.
func RegisterBackendRoutes(app *fiber.App, cfg BackendRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", auth.RequireAuth(cfg.TokenManager))
	api.Get("/data", cfg.Backend.Data)
	api.Get("/dashboard", cfg.Backend.Dashboard)
	api.Post("/payments/create-intent", cfg.Backend.CreateIntent)
}

// PaymentRouteConfig bundles dependencies for the payment service routes.
type PaymentRouteConfig struct {
	Health       *handlers.HealthHandler
	Payments     *handlers.PaymentsHandler
	TokenManager *auth.TokenManager
}

// RegisterPaymentRoutes wires the payment service endpoints.
func RegisterPaymentRoutes(app *fiber.App, cfg PaymentRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/create-payment-intent", auth.RequireAuth(cfg.TokenManager), cfg.Payments.CreateIntent)
	app.Post("/webhook", cfg.Payments.Webhook)
}
