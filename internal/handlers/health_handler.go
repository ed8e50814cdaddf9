package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pawhelp/pawhelp-backend/internal/database"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/services"
	"github.com/pawhelp/pawhelp-backend/internal/store"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db       *gorm.DB
	evidence *services.EvidenceService
}

func NewHealthHandler(db *gorm.DB, evidence *services.EvidenceService) *HealthHandler {
	return &HealthHandler{db: db, evidence: evidence}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "up",
		Evidence:  "up",
	}

	if err := database.Ping(h.db); err != nil {
		resp.Status = "degraded"
		resp.DB = "down"
	}

	if err := h.evidence.Probe(c.Context()); err != nil {
		if errors.Is(err, store.ErrNotConfigured) {
			resp.Evidence = "disabled"
		} else {
			resp.Status = "degraded"
			resp.Evidence = "down"
		}
	}

	status := fiber.StatusOK
	if resp.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
