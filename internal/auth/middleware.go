package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/shopstack/auth-platform/pkg/util"
)

const claimsKey = "auth_claims"

// TokenFromRequest extracts the presented access token from either the
// x-access-token header or an Authorization bearer header.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Get("x-access-token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth validates bearer tokens and stores the recovered claims for
// downstream handlers. Expired and forged tokens are rejected identically.
func RequireAuth(tokens *TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return apperrors.NewNoToken()
		}

		claims, err := tokens.VerifyAccessToken(token)
		if err != nil {
			return apperrors.NewInvalidToken()
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext retrieves the authenticated principal's claims.
func ClaimsFromContext(c *fiber.Ctx) (*AccessClaims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*AccessClaims)
	return claims, ok
}
