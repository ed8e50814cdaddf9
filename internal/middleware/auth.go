package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/config"
	"github.com/pawhelp/pawhelp-backend/internal/dto"

	jwtware "github.com/gofiber/contrib/jwt"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// OptionalJWT parses a bearer token when present but lets anonymous
// requests through. Citizen submissions work either way; a valid token
// just attributes the report to its author.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	protected := jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Next()
		},
	})
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		return protected(c)
	}
}

// UserID extracts the authenticated user's id from the parsed token,
// or nil for anonymous requests.
func UserID(c *fiber.Ctx) *uuid.UUID {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil
	}
	return &id
}
