package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"gorm.io/gorm"
)

// GormStore implements RecordStore on PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateReport(ctx context.Context, r *models.Report) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSubmission
		}
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (s *GormStore) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var r models.Report
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *GormStore) GetReportBySubmissionID(ctx context.Context, submissionID string) (*models.Report, error) {
	var r models.Report
	if err := s.db.WithContext(ctx).First(&r, "submission_id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *GormStore) UpdateReport(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := s.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteReport(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListReports(ctx context.Context, f ReportFilter) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Report{})
	if f.Kind != "" {
		query = query.Where("kind = ?", f.Kind)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.PublishedOnly {
		query = query.Where("published = true")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(f.Offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *GormStore) CreateAdoption(ctx context.Context, a *models.AdoptionApplication) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create adoption application: %w", err)
	}
	return nil
}

func (s *GormStore) GetAdoption(ctx context.Context, id uuid.UUID) (*models.AdoptionApplication, error) {
	var a models.AdoptionApplication
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *GormStore) UpdateAdoption(ctx context.Context, id uuid.UUID, fields map[string]any, pendingOnly bool) (int64, error) {
	query := s.db.WithContext(ctx).Model(&models.AdoptionApplication{}).Where("id = ?", id)
	if pendingOnly {
		query = query.Where("status = ?", models.AdoptionPending)
	}
	result := query.Updates(fields)
	return result.RowsAffected, result.Error
}

func (s *GormStore) ListAdoptions(ctx context.Context, status models.AdoptionStatus, limit, offset int) ([]models.AdoptionApplication, int64, error) {
	var apps []models.AdoptionApplication
	var total int64

	query := s.db.WithContext(ctx).Model(&models.AdoptionApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}
