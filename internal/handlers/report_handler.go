package handlers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/middleware"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/pawhelp/pawhelp-backend/internal/services"
	"github.com/pawhelp/pawhelp-backend/internal/store"
	"github.com/pawhelp/pawhelp-backend/internal/submission"
)

// ReportHandler serves the public report surface: citizen submission
// and browsing of published reports.
type ReportHandler struct {
	submissions *services.SubmissionService
	moderation  *services.ModerationService
	evidence    *services.EvidenceService
}

func NewReportHandler(submissions *services.SubmissionService, moderation *services.ModerationService, evidence *services.EvidenceService) *ReportHandler {
	return &ReportHandler{submissions: submissions, moderation: moderation, evidence: evidence}
}

// Submit accepts a multipart form: a required "payload" JSON part and
// an optional "evidence" file part.
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	payloadJSON := c.FormValue("payload")
	if payloadJSON == "" {
		// Plain JSON bodies are accepted too, for clients that have no
		// file to attach.
		payloadJSON = string(c.Body())
	}

	var payload submission.Payload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report payload",
		})
	}

	var file *services.EvidenceFile
	if fh, err := c.FormFile("evidence"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to read evidence file",
			})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to read evidence file",
			})
		}
		file = &services.EvidenceFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	report, err := h.submissions.Submit(c.Context(), &payload, file, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrUploadFailed), errors.Is(err, store.ErrNotConfigured):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Evidence upload failed; the report was not saved",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to save report",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewReportResponse(report))
}

// List returns published reports only; the moderation console uses the
// admin listing instead.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	filter := store.ReportFilter{
		Kind:          models.ReportKind(c.Query("kind")),
		Status:        models.ReportStatus(c.Query("status")),
		PublishedOnly: true,
		Limit:         c.QueryInt("limit"),
		Offset:        c.QueryInt("offset"),
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

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report id",
		})
	}

	report, err := h.moderation.GetReport(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load report",
		})
	}
	if !report.Published {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Report not found",
		})
	}

	return c.JSON(dto.NewReportResponse(report))
}

// EvidenceURL hands out a short-lived signed URL for the report's
// evidence object.
func (h *ReportHandler) EvidenceURL(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report id",
		})
	}

	url, expiry, err := h.evidence.ResolveURL(c.Context(), id, 0)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		case errors.Is(err, services.ErrNoEvidence):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report has no evidence",
			})
		case errors.Is(err, store.ErrNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Evidence storage is not configured",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to sign evidence URL",
			})
		}
	}

	return c.JSON(dto.EvidenceURLResponse{URL: url, ExpiresIn: int64(expiry.Seconds())})
}
