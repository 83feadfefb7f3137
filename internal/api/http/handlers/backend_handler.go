package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shopstack/auth-platform/internal/api/dto"
	"github.com/shopstack/auth-platform/internal/auth"
	"github.com/shopstack/auth-platform/internal/client"
	"github.com/shopstack/auth-platform/internal/service"
)

// BackendHandler exposes dashboard aggregation and the payment-intent proxy.
type BackendHandler struct {
	dashboard *service.DashboardService
	payments  *client.PaymentClient
}

// NewBackendHandler constructs handler.
func NewBackendHandler(dashboard *service.DashboardService, payments *client.PaymentClient) *BackendHandler {
	return &BackendHandler{dashboard: dashboard, payments: payments}
}

// Data handles GET /api/data.
func (h *BackendHandler) Data(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Protected data"})
}

// Dashboard handles GET /api/dashboard.
func (h *BackendHandler) Dashboard(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"userCount":    summary.UserCount,
		"paymentCount": summary.PaymentCount,
		"message":      "Dashboard data",
	})
}

// CreateIntent handles POST /api/payments/create-intent by forwarding to the
// payment service.
func (h *BackendHandler) CreateIntent(c *fiber.Ctx) error {
	var req dto.CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.payments.CreateIntent(
		c.UserContext(),
		auth.TokenFromRequest(c),
		c.Get("X-Request-ID"),
		client.IntentRequest{Amount: req.Amount, Currency: req.Currency},
	)
	if err != nil {
		return err
	}

	return c.Status(result.StatusCode).JSON(result.Body)
}
