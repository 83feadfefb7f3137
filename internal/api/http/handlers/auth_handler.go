package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shopstack/auth-platform/internal/api/dto"
	"github.com/shopstack/auth-platform/internal/auth"
	"github.com/shopstack/auth-platform/internal/service"
)

// AuthHandler exposes login, validate, refresh and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	_, pair, err := h.auth.Login(c.UserContext(), req.Email, req.Password, c.IP())
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Validate handles GET /validate.
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	token := auth.TokenFromRequest(c)

	result, err := h.auth.Validate(c.UserContext(), token)
	if err != nil {
		return err
	}

	return c.JSON(dto.ValidateResponse{
		Valid:  true,
		UserID: result.UserID,
		Email:  result.Email,
		Name:   result.Name,
	})
}

// Refresh handles POST /refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	pair, rotated, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}

	resp := dto.RefreshResponse{Token: pair.AccessToken}
	if rotated {
		resp.RefreshToken = pair.RefreshToken
	}
	return c.JSON(resp)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.auth.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
