package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/pawhelp/pawhelp-backend/internal/store"
	"gorm.io/datatypes"
)

// AdoptionService handles adoption applications and their single-shot
// approve/reject decisions.
type AdoptionService struct {
	records store.RecordStore
}

func NewAdoptionService(records store.RecordStore) *AdoptionService {
	return &AdoptionService{records: records}
}

func (s *AdoptionService) Submit(ctx context.Context, req *dto.AdoptionRequest, createdBy *uuid.UUID) (*models.AdoptionApplication, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	references := datatypes.JSON("[]")
	if len(req.References) > 0 {
		b, err := json.Marshal(req.References)
		if err != nil {
			return nil, fmt.Errorf("failed to encode references: %w", err)
		}
		references = datatypes.JSON(b)
	}

	app := &models.AdoptionApplication{
		AnimalID:   req.AnimalID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		Household:  req.Household,
		Experience: req.Experience,
		References: references,
		Status:     models.AdoptionPending,
		CreatedBy:  createdBy,
	}

	if err := s.records.CreateAdoption(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to persist adoption application: %w", err)
	}
	return app, nil
}

// Decide approves or rejects a pending application. The reason is
// mandatory, and ReviewedBy/ReviewedAt land in the same update as the
// status so a decision is never half-recorded.
func (s *AdoptionService) Decide(ctx context.Context, id uuid.UUID, req *dto.AdoptionDecisionRequest, reviewer uuid.UUID) (*models.AdoptionApplication, error) {
	status := models.AdoptionStatus(req.Decision)
	if status != models.AdoptionApproved && status != models.AdoptionRejected {
		return nil, ErrInvalidDecision
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	now := time.Now().UTC()
	rows, err := s.records.UpdateAdoption(ctx, id, map[string]any{
		"status":          status,
		"decision_reason": req.Reason,
		"reviewed_by":     reviewer,
		"reviewed_at":     now,
	}, true)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Either the application does not exist or it is no longer
		// pending; look it up to tell the two apart.
		if _, getErr := s.records.GetAdoption(ctx, id); getErr != nil {
			if errors.Is(getErr, store.ErrNotFound) {
				return nil, ErrAdoptionNotFound
			}
			return nil, getErr
		}
		return nil, ErrAlreadyDecided
	}

	return s.records.GetAdoption(ctx, id)
}

func (s *AdoptionService) List(ctx context.Context, status models.AdoptionStatus, limit, offset int) ([]models.AdoptionApplication, int64, error) {
	return s.records.ListAdoptions(ctx, status, limit, offset)
}

func (s *AdoptionService) Get(ctx context.Context, id uuid.UUID) (*models.AdoptionApplication, error) {
	app, err := s.records.GetAdoption(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAdoptionNotFound
	}
	return app, err
}
