package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenRevocationChecker reports whether a bearer token has been invalidated
// by logout before its natural expiry.
type TokenRevocationChecker interface {
	IsRevoked(token string) bool
}

func JwtMiddleware(secret string, revoked TokenRevocationChecker) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		if revoked != nil && revoked.IsRevoked(tokenStr) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token revoked"})
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		ctx.Locals("user_id", claims["user_id"])
		ctx.Locals("token", tokenStr)
		return ctx.Next()
	}
}
