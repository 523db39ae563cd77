package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/praneswara/polygreen/internal/api/contract"
	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/pkg/token"
)

const (
	bearerSchema = "Bearer "

	// Locals keys set for downstream handlers.
	LocalUserID = "userID"
	LocalClaims = "claims"
)

func BearerAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerSchema) {
			return unauthorized(c, constants.ErrCodeTokenInvalid)
		}

		claims, err := tokens.Parse(authHeader[len(bearerSchema):])
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				return unauthorized(c, constants.ErrCodeTokenExpired)
			}
			return unauthorized(c, constants.ErrCodeTokenInvalid)
		}

		c.Locals(LocalUserID, claims.Subject)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(contract.ErrorResponse{
		Code:    code,
		Message: constants.GetErrorMessage(code),
	})
}
