package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/config"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"gorm.io/gorm"
)

// StaffRequired gates the moderation console. Access is granted by:
// 1. The configured admin token header (automation, break-glass)
// 2. Config-based admin email list
// 3. The user's stored role (staff or admin)
func StaffRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if c.Get("X-Admin-Token") == cfg.AdminToken {
				return c.Next()
			}
		}

		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}

		email, _ := claims["email"].(string)
		if contains(adminEmails, email) {
			return c.Next()
		}

		if role, _ := claims["role"].(string); role == "staff" || role == "admin" {
			return c.Next()
		}

		// The role claim may be stale after a promotion; fall back to
		// the stored record before refusing.
		if sub, _ := claims["sub"].(string); sub != "" {
			if userID, err := uuid.Parse(sub); err == nil {
				var user models.User
				if err := db.First(&user, "id = ?", userID).Error; err == nil {
					if user.Role == "staff" || user.Role == "admin" {
						return c.Next()
					}
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Staff access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
