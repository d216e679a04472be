package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionUserKey is where the authenticated subject is stored in locals.
const SessionUserKey = "session_user"

// Session verifies the Bearer token on every request. Tokens are HS256
// JWTs signed with secret; anything else gets a 401.
func Session(secret string) fiber.Handler {
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return unauthorized(c)
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return unauthorized(c)
		}

		if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
			c.Locals(SessionUserKey, sub)
		}

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
