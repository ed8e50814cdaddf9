package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/pawhelp/pawhelp-backend/internal/services"
	"github.com/pawhelp/pawhelp-backend/internal/store"
)

// ModerationHandler serves the staff console: full report listing,
// status and visibility changes, edits, delete and undo.
type ModerationHandler struct {
	moderation *services.ModerationService
}

func NewModerationHandler(moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// List includes unpublished reports; staff see everything.
func (h *ModerationHandler) List(c *fiber.Ctx) error {
	filter := store.ReportFilter{
		Kind:   models.ReportKind(c.Query("kind")),
		Status: models.ReportStatus(c.Query("status")),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	reports, total, err := h.moderation.ListReports(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list reports",
		})
	}

	resp := dto.ReportListResponse{
		Reports: make([]dto.ReportResponse, 0, len(reports)),
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}
	for i := range reports {
		resp.Reports = append(resp.Reports, dto.NewReportResponse(&reports[i]))
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report id",
		})
	}

	report, err := h.moderation.GetReport(c.Context(), id)
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(dto.NewReportResponse(report))
}

func (h *ModerationHandler) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report id",
		})
	}

	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.moderation.SetStatus(c.Context(), id, models.ReportStatus(req.Status)); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return h.reportError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Status updated"})
}

func (h *ModerationHandler) SetPublished(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report id",
		})
	}

	var req dto.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.moderation.SetPublished(c.Context(), id, req.Published); err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Visibility updated"})
}

func (h *ModerationHandler) Edit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report id",
		})
	}

	var req dto.EditReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.moderation.EditReport(c.Context(), id, &req); err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return h.reportError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report updated"})
}

func (h *ModerationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report id",
		})
	}

	if err := h.moderation.DeleteReport(c.Context(), id); err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report deleted"})
}

// Undo restores the most recently deleted report if its grace window
// is still open.
func (h *ModerationHandler) Undo(c *fiber.Ctx) error {
	report, err := h.moderation.UndoDelete(c.Context())
	if err != nil {
		if errors.Is(err, services.ErrNothingToUndo) {
			return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{
				Error: true, Message: "Nothing to undo",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to restore report",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReportResponse(report))
}

func (h *ModerationHandler) reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrReportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Report not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
