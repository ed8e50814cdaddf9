package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/middleware"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/pawhelp/pawhelp-backend/internal/services"
)

type AdoptionHandler struct {
	adoptions *services.AdoptionService
}

func NewAdoptionHandler(adoptions *services.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{adoptions: adoptions}
}

func (h *AdoptionHandler) Submit(c *fiber.Ctx) error {
	var req dto.AdoptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	app, err := h.adoptions.Submit(c.Context(), &req, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save application",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewAdoptionResponse(app))
}

func (h *AdoptionHandler) List(c *fiber.Ctx) error {
	status := models.AdoptionStatus(c.Query("status"))
	apps, total, err := h.adoptions.List(c.Context(), status, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list applications",
		})
	}

	resp := dto.AdoptionListResponse{
		Applications: make([]dto.AdoptionResponse, 0, len(apps)),
		Total:        total,
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, dto.NewAdoptionResponse(&apps[i]))
	}
	return c.JSON(resp)
}

func (h *AdoptionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	app, err := h.adoptions.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAdoptionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Application not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load application",
		})
	}
	return c.JSON(dto.NewAdoptionResponse(app))
}

// Decide approves or rejects a pending application.
func (h *AdoptionHandler) Decide(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	var req dto.AdoptionDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	reviewer := middleware.UserID(c)
	if reviewer == nil {
		// Admin-token callers have no user id; decisions need a real
		// reviewer on record.
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Decisions require an authenticated staff account",
		})
	}

	app, err := h.adoptions.Decide(c.Context(), id, &req, *reviewer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDecision), errors.Is(err, services.ErrReasonRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAdoptionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Application not found",
			})
		case errors.Is(err, services.ErrAlreadyDecided):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to record decision",
			})
		}
	}

	return c.JSON(dto.NewAdoptionResponse(app))
}
