package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/models"
)

type ReportResponse struct {
	ID           uuid.UUID           `json:"id"`
	Kind         models.ReportKind   `json:"kind"`
	SubmissionID string              `json:"submission_id"`
	AnimalType   string              `json:"animal_type,omitempty"`
	AnimalName   string              `json:"animal_name,omitempty"`
	ContactName  string              `json:"contact_name"`
	ContactPhone string              `json:"contact_phone"`
	ContactEmail string              `json:"contact_email"`
	Status       models.ReportStatus `json:"status"`
	Published    bool                `json:"published"`
	HasEvidence  bool                `json:"has_evidence"`
	Details      json.RawMessage     `json:"details,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func NewReportResponse(r *models.Report) ReportResponse {
	return ReportResponse{
		ID:           r.ID,
		Kind:         r.Kind,
		SubmissionID: r.SubmissionID,
		AnimalType:   r.AnimalType,
		AnimalName:   r.AnimalName,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
		Status:       r.Status,
		Published:    r.Published,
		HasEvidence:  r.UploadObjectKey != nil || r.EvidenceURL != nil,
		Details:      json.RawMessage(r.Details),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type EvidenceURLResponse struct {
	URL string `json:"url"`
	// ExpiresIn is seconds until the URL stops working; zero means the
	// URL does not expire on our side.
	ExpiresIn int64 `json:"expires_in"`
}
