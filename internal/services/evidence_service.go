package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/store"
)

// EvidenceService resolves a report's stored evidence into a
// displayable URL. Keyed uploads get a time-limited signed URL; legacy
// records that stored a direct URL bypass signing entirely. Expired
// URLs are the caller's problem: re-request, no automatic refresh.
type EvidenceService struct {
	records       store.RecordStore
	evidence      store.EvidenceStore
	defaultExpiry time.Duration
}

func NewEvidenceService(records store.RecordStore, evidence store.EvidenceStore, defaultExpiry time.Duration) *EvidenceService {
	if defaultExpiry <= 0 {
		defaultExpiry = 15 * time.Minute
	}
	return &EvidenceService{records: records, evidence: evidence, defaultExpiry: defaultExpiry}
}

// ResolveURL returns a display URL for the report's evidence and how
// long it stays valid (zero for legacy direct URLs, which do not
// expire on our side).
func (s *EvidenceService) ResolveURL(ctx context.Context, reportID uuid.UUID, expiry time.Duration) (string, time.Duration, error) {
	report, err := s.records.GetReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", 0, ErrReportNotFound
		}
		return "", 0, err
	}

	if report.EvidenceURL != nil {
		return *report.EvidenceURL, 0, nil
	}
	if report.UploadObjectKey == nil {
		return "", 0, ErrNoEvidence
	}

	if expiry <= 0 {
		expiry = s.defaultExpiry
	}
	url, err := s.evidence.SignedURL(ctx, *report.UploadObjectKey, expiry)
	if err != nil {
		return "", 0, err
	}
	return url, expiry, nil
}

// Probe checks object-storage connectivity. Used by the health
// endpoint only.
func (s *EvidenceService) Probe(ctx context.Context) error {
	_, err := s.evidence.List(ctx, "", 1)
	return err
}
