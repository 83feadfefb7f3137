package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shopstack/auth-platform/internal/api/dto"
	"github.com/shopstack/auth-platform/internal/auth"
	"github.com/shopstack/auth-platform/internal/domain"
	"github.com/shopstack/auth-platform/internal/service"
	apperrors "github.com/shopstack/auth-platform/pkg/util"
)

// PaymentsHandler exposes intent creation and the provider webhook.
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: paymentService}
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentsHandler) CreateIntent(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewNoToken()
	}

	var req dto.CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	payment, err := h.payments.CreateIntent(c.UserContext(), claims.UserID, req.Amount, req.Currency)
	if err != nil {
		return err
	}

	return c.JSON(dto.CreateIntentResponse{
		PaymentIntentID: payment.IntentID,
		ClientSecret:    payment.IntentID + "_secret",
		Status:          string(payment.Status),
	})
}

// Webhook handles POST /webhook. The provider is always acknowledged.
func (h *PaymentsHandler) Webhook(c *fiber.Ctx) error {
	var req dto.WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(http.StatusOK)
	}

	status := domain.PaymentStatus(req.Status)
	switch status {
	case domain.PaymentStatusSucceeded, domain.PaymentStatusFailed, domain.PaymentStatusPending:
	default:
		return c.SendStatus(http.StatusOK)
	}

	if err := h.payments.ApplyWebhook(c.UserContext(), req.PaymentIntentID, status); err != nil {
		return err
	}
	return c.SendStatus(http.StatusOK)
}
