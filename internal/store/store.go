// Package store defines the record-store and evidence-store ports and
// their Postgres / S3 implementations. Services depend on the
// interfaces only, so tests substitute in-memory fakes.
package store

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/models"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateSubmission = errors.New("submission id already exists")

	// ErrNotConfigured is returned by every evidence operation when
	// object storage was never initialized (missing configuration).
	ErrNotConfigured = errors.New("evidence store not configured: set S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY")
)

// ReportFilter narrows ListReports. Zero values mean "no filter".
type ReportFilter struct {
	Kind          models.ReportKind
	Status        models.ReportStatus
	PublishedOnly bool
	Limit         int
	Offset        int
}

// RecordStore is the document-store port: typed collections of
// reports and adoption applications with status and timestamps.
type RecordStore interface {
	CreateReport(ctx context.Context, r *models.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	GetReportBySubmissionID(ctx context.Context, submissionID string) (*models.Report, error)
	UpdateReport(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteReport(ctx context.Context, id uuid.UUID) error
	ListReports(ctx context.Context, f ReportFilter) ([]models.Report, int64, error)

	CreateAdoption(ctx context.Context, a *models.AdoptionApplication) error
	GetAdoption(ctx context.Context, id uuid.UUID) (*models.AdoptionApplication, error)
	// UpdateAdoption applies fields and returns the number of rows
	// touched. With pendingOnly set, only an undecided application is
	// updated, which keeps decisions single-shot.
	UpdateAdoption(ctx context.Context, id uuid.UUID, fields map[string]any, pendingOnly bool) (int64, error)
	ListAdoptions(ctx context.Context, status models.AdoptionStatus, limit, offset int) ([]models.AdoptionApplication, int64, error)
}

// EvidenceStore is the object-storage port.
type EvidenceStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// List exists as a connectivity probe; callers only care whether
	// the bucket answers.
	List(ctx context.Context, prefix string, limit int) ([]string, error)
}

// DisabledEvidenceStore stands in when object storage is not
// configured; every operation fails fast with a descriptive error.
type DisabledEvidenceStore struct{}

func (DisabledEvidenceStore) Upload(context.Context, string, io.Reader, string) error {
	return ErrNotConfigured
}

func (DisabledEvidenceStore) SignedURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrNotConfigured
}

func (DisabledEvidenceStore) List(context.Context, string, int) ([]string, error) {
	return nil, ErrNotConfigured
}
