package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/feed"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/pawhelp/pawhelp-backend/internal/store"
	"github.com/pawhelp/pawhelp-backend/internal/submission"
	"gorm.io/datatypes"
)

// EvidenceFile is an uploaded photo or video accompanying a report.
type EvidenceFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubmissionService turns a validated citizen payload into a durable,
// de-duplicated report record with its evidence attached. The write is
// two-phase: the record is persisted first, then the file is uploaded
// and its key attached. An upload failure rolls the record back so
// moderators never see a half-submitted report.
type SubmissionService struct {
	records  store.RecordStore
	evidence store.EvidenceStore
	feed     feed.Publisher
}

func NewSubmissionService(records store.RecordStore, evidence store.EvidenceStore, pub feed.Publisher) *SubmissionService {
	return &SubmissionService{records: records, evidence: evidence, feed: pub}
}

func (s *SubmissionService) Submit(ctx context.Context, p *submission.Payload, file *EvidenceFile, createdBy *uuid.UUID) (*models.Report, error) {
	if err := validatePayload(p); err != nil {
		return nil, err
	}

	submissionID := p.SubmissionID
	if submissionID == "" {
		submissionID = submission.NewSubmissionID()
	}

	details, err := json.Marshal(submission.Build(p))
	if err != nil {
		return nil, fmt.Errorf("failed to encode report details: %w", err)
	}

	report := &models.Report{
		Kind:         p.Kind,
		SubmissionID: submissionID,
		AnimalType:   p.AnimalType,
		AnimalName:   p.AnimalName,
		ContactName:  p.ContactName,
		ContactPhone: p.ContactPhone,
		ContactEmail: p.ContactEmail,
		Status:       models.StatusOpen,
		Published:    true,
		CreatedBy:    createdBy,
		Details:      datatypes.JSON(details),
	}

	if err := s.records.CreateReport(ctx, report); err != nil {
		if errors.Is(err, store.ErrDuplicateSubmission) {
			// Same idempotency token means the same user-intended
			// submission, typically a double-click or network retry.
			// Return the existing record instead of writing a twin.
			existing, getErr := s.records.GetReportBySubmissionID(ctx, submissionID)
			if getErr == nil {
				slog.Info("duplicate submission suppressed",
					"submission_id", submissionID, "report_id", existing.ID)
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}
	s.publish(ctx, feed.EventCreated, report)

	if file == nil {
		return report, nil
	}

	// Upload strictly after the create is acknowledged: a failed
	// upload then has a real record id to roll back, instead of an
	// orphan file with no record.
	key := submission.EvidenceKey(createdBy, file.Name)
	slog.Info("uploading evidence",
		"report_id", report.ID,
		"filename", submission.SanitizeFilename(file.Name),
		"key", key)

	if err := s.evidence.Upload(ctx, key, bytes.NewReader(file.Data), file.ContentType); err != nil {
		s.rollback(ctx, report)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if err := s.records.UpdateReport(ctx, report.ID, map[string]any{"upload_object_key": key}); err != nil {
		// The file is up but the record never learned its key; drop
		// the record too so nothing half-attached stays visible.
		s.rollback(ctx, report)
		return nil, fmt.Errorf("failed to attach evidence key: %w", err)
	}

	report.UploadObjectKey = &key
	s.publish(ctx, feed.EventUpdated, report)
	return report, nil
}

// rollback deletes the freshly created record. A failure here is
// secondary: it is logged and swallowed so the original cause still
// reaches the caller, accepting an orphan record in the store.
func (s *SubmissionService) rollback(ctx context.Context, report *models.Report) {
	if err := s.records.DeleteReport(ctx, report.ID); err != nil {
		slog.Error("compensating delete failed, orphan record remains",
			"report_id", report.ID,
			"action", "submission_rollback",
			"error", err)
		return
	}
	s.publish(ctx, feed.EventDeleted, report)
}

func (s *SubmissionService) publish(ctx context.Context, eventType string, r *models.Report) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, feed.Event{Type: eventType, Report: feed.Summarize(r)}); err != nil {
		slog.Error("feed publish failed", "error", err, "report_id", r.ID)
	}
}

func validatePayload(p *submission.Payload) error {
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: kind must be lost, found, or abuse", ErrValidation)
	}
	if strings.TrimSpace(p.ContactName) == "" {
		return fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	if strings.TrimSpace(p.ContactPhone) == "" {
		return fmt.Errorf("%w: contact phone is required", ErrValidation)
	}
	if strings.TrimSpace(p.ContactEmail) == "" {
		return fmt.Errorf("%w: contact email is required", ErrValidation)
	}
	return nil
}
