package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/feed"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/pawhelp/pawhelp-backend/internal/store"
	"github.com/pawhelp/pawhelp-backend/internal/submission"
	"gorm.io/datatypes"
)

// ModerationService applies staff actions to reports: status
// overwrites, publish toggles, edits, and deletion with a short undo
// grace window. Status transitions are deliberately unrestricted at
// the store layer; the set of legal-looking transitions is a UI
// concern, not a data invariant.
type ModerationService struct {
	records   store.RecordStore
	feed      feed.Publisher
	undoGrace time.Duration

	mu          sync.Mutex
	lastDeleted *models.Report
	undoTimer   *time.Timer
}

func NewModerationService(records store.RecordStore, pub feed.Publisher, undoGrace time.Duration) *ModerationService {
	if undoGrace <= 0 {
		undoGrace = 10 * time.Second
	}
	return &ModerationService{records: records, feed: pub, undoGrace: undoGrace}
}

func (s *ModerationService) ListReports(ctx context.Context, f store.ReportFilter) ([]models.Report, int64, error) {
	return s.records.ListReports(ctx, f)
}

func (s *ModerationService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	r, err := s.records.GetReport(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrReportNotFound
	}
	return r, err
}

// SetStatus overwrites the status directly. Any valid status value is
// accepted regardless of the current one; skipping "investigating" on
// the way to "resolved" is intended behavior.
func (s *ModerationService) SetStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.update(ctx, id, map[string]any{"status": status}); err != nil {
		return err
	}
	s.publishCurrent(ctx, id)
	return nil
}

// SetPublished flips public visibility without touching moderation
// state.
func (s *ModerationService) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	if err := s.update(ctx, id, map[string]any{"published": published}); err != nil {
		return err
	}
	s.publishCurrent(ctx, id)
	return nil
}

// EditReport applies a partial field update from the console.
func (s *ModerationService) EditReport(ctx context.Context, id uuid.UUID, req *dto.EditReportRequest) error {
	updates := map[string]any{}
	if req.AnimalType != nil {
		updates["animal_type"] = *req.AnimalType
	}
	if req.AnimalName != nil {
		updates["animal_name"] = *req.AnimalName
	}
	if req.ContactName != nil {
		updates["contact_name"] = *req.ContactName
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.Details != nil {
		b, err := json.Marshal(submission.Clean(req.Details))
		if err != nil {
			return fmt.Errorf("failed to encode details: %w", err)
		}
		updates["details"] = datatypes.JSON(b)
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	if err := s.update(ctx, id, updates); err != nil {
		return err
	}
	s.publishCurrent(ctx, id)
	return nil
}

// DeleteReport hard-deletes a report. The deleted record is held in a
// single-process, non-durable undo buffer for the grace window; the
// stored record itself is gone the moment this returns.
func (s *ModerationService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	report, err := s.records.GetReport(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}

	if err := s.records.DeleteReport(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}

	s.mu.Lock()
	if s.undoTimer != nil {
		s.undoTimer.Stop()
	}
	s.lastDeleted = report
	s.undoTimer = time.AfterFunc(s.undoGrace, func() {
		s.mu.Lock()
		if s.lastDeleted != nil && s.lastDeleted.ID == report.ID {
			s.lastDeleted = nil
		}
		s.mu.Unlock()
	})
	s.mu.Unlock()

	s.publishEvent(ctx, feed.EventDeleted, report)
	return nil
}

// UndoDelete re-creates the most recently deleted report with the
// same field values. This is a cosmetic restore, not a true undo: the
// store assigns a fresh id, and once the grace window lapses the
// buffer is discarded for good.
func (s *ModerationService) UndoDelete(ctx context.Context) (*models.Report, error) {
	s.mu.Lock()
	report := s.lastDeleted
	s.lastDeleted = nil
	if s.undoTimer != nil {
		s.undoTimer.Stop()
		s.undoTimer = nil
	}
	s.mu.Unlock()

	if report == nil {
		return nil, ErrNothingToUndo
	}

	restored := *report
	restored.ID = uuid.Nil
	if err := s.records.CreateReport(ctx, &restored); err != nil {
		return nil, fmt.Errorf("failed to restore report: %w", err)
	}

	s.publishEvent(ctx, feed.EventCreated, &restored)
	return &restored, nil
}

func (s *ModerationService) update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if err := s.records.UpdateReport(ctx, id, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	return nil
}

func (s *ModerationService) publishCurrent(ctx context.Context, id uuid.UUID) {
	report, err := s.records.GetReport(ctx, id)
	if err != nil {
		slog.Error("failed to load report for feed event", "report_id", id, "error", err)
		return
	}
	s.publishEvent(ctx, feed.EventUpdated, report)
}

func (s *ModerationService) publishEvent(ctx context.Context, eventType string, r *models.Report) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, feed.Event{Type: eventType, Report: feed.Summarize(r)}); err != nil {
		slog.Error("feed publish failed", "error", err, "report_id", r.ID)
	}
}
