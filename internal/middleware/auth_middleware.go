package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/shortlist-hq/shortlist-api/internal/config"
)

// UserIDKey is where RequireAuth stores the authenticated subject.
const UserIDKey = "user_id"

// RequireAuth validates the bearer token and stashes its subject claim
// into the request locals. When no JWT secret is configured the request
// falls through as the anonymous user, which keeps local development
// tokenless.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := config.LoadAuthConfig().JWTSecret
		if secret == "" {
			c.Locals(UserIDKey, "anonymous")
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c, "missing bearer token")
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
		if err != nil || !token.Valid {
			return unauthorized(c, "invalid or expired token")
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			return unauthorized(c, "token carries no subject")
		}
		c.Locals(UserIDKey, sub)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
