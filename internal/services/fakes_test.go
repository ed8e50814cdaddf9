package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/feed"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/pawhelp/pawhelp-backend/internal/store"
)

// fakeRecordStore is an in-memory RecordStore that records the call
// sequence and can be told to fail specific operations.
type fakeRecordStore struct {
	mu        sync.Mutex
	reports   map[uuid.UUID]*models.Report
	adoptions map[uuid.UUID]*models.AdoptionApplication
	calls     []string

	failCreate bool
	failUpdate bool
	failDelete error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		reports:   make(map[uuid.UUID]*models.Report),
		adoptions: make(map[uuid.UUID]*models.AdoptionApplication),
	}
}

func (f *fakeRecordStore) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeRecordStore) CreateReport(_ context.Context, r *models.Report) error {
	f.record("create")
	if f.failCreate {
		return store.ErrDuplicateSubmission
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reports {
		if existing.SubmissionID == r.SubmissionID {
			return store.ErrDuplicateSubmission
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	copied := *r
	f.reports[r.ID] = &copied
	return nil
}

func (f *fakeRecordStore) GetReport(_ context.Context, id uuid.UUID) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRecordStore) GetReportBySubmissionID(_ context.Context, submissionID string) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reports {
		if r.SubmissionID == submissionID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeRecordStore) UpdateReport(_ context.Context, id uuid.UUID, fields map[string]any) error {
	f.record("update")
	if f.failUpdate {
		return store.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return store.ErrNotFound
	}
	if v, ok := fields["upload_object_key"]; ok {
		key := v.(string)
		r.UploadObjectKey = &key
	}
	if v, ok := fields["status"]; ok {
		r.Status = v.(models.ReportStatus)
	}
	if v, ok := fields["published"]; ok {
		r.Published = v.(bool)
	}
	if v, ok := fields["animal_name"]; ok {
		r.AnimalName = v.(string)
	}
	return nil
}

func (f *fakeRecordStore) DeleteReport(_ context.Context, id uuid.UUID) error {
	f.record("delete")
	if f.failDelete != nil {
		return f.failDelete
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reports[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeRecordStore) ListReports(_ context.Context, filter store.ReportFilter) ([]models.Report, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Report, 0, len(f.reports))
	for _, r := range f.reports {
		if filter.PublishedOnly && !r.Published {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecordStore) CreateAdoption(_ context.Context, a *models.AdoptionApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	copied := *a
	f.adoptions[a.ID] = &copied
	return nil
}

func (f *fakeRecordStore) GetAdoption(_ context.Context, id uuid.UUID) (*models.AdoptionApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.adoptions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeRecordStore) UpdateAdoption(_ context.Context, id uuid.UUID, fields map[string]any, pendingOnly bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.adoptions[id]
	if !ok {
		return 0, nil
	}
	if pendingOnly && a.Status != models.AdoptionPending {
		return 0, nil
	}
	if v, ok := fields["status"]; ok {
		a.Status = v.(models.AdoptionStatus)
	}
	if v, ok := fields["decision_reason"]; ok {
		a.DecisionReason = v.(string)
	}
	if v, ok := fields["reviewed_by"]; ok {
		reviewer := v.(uuid.UUID)
		a.ReviewedBy = &reviewer
	}
	if v, ok := fields["reviewed_at"]; ok {
		t := v.(time.Time)
		a.ReviewedAt = &t
	}
	return 1, nil
}

func (f *fakeRecordStore) ListAdoptions(_ context.Context, status models.AdoptionStatus, limit, offset int) ([]models.AdoptionApplication, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.AdoptionApplication, 0, len(f.adoptions))
	for _, a := range f.adoptions {
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

// fakeEvidenceStore records uploads and can fail on demand.
type fakeEvidenceStore struct {
	mu         sync.Mutex
	uploads    map[string][]byte
	calls      []string
	failUpload error
	signedURL  string
}

func newFakeEvidenceStore() *fakeEvidenceStore {
	return &fakeEvidenceStore{uploads: make(map[string][]byte), signedURL: "https://evidence.test/signed"}
}

func (f *fakeEvidenceStore) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	f.mu.Lock()
	f.calls = append(f.calls, "upload")
	f.mu.Unlock()
	if f.failUpload != nil {
		return f.failUpload
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.uploads[key] = data
	f.mu.Unlock()
	return nil
}

func (f *fakeEvidenceStore) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return f.signedURL + "/" + key, nil
}

func (f *fakeEvidenceStore) List(context.Context, string, int) ([]string, error) {
	return nil, nil
}

// fakePublisher collects feed events.
type fakePublisher struct {
	mu     sync.Mutex
	events []feed.Event
}

func (f *fakePublisher) Publish(_ context.Context, ev feed.Event) error {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
	return nil
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Type)
	}
	return out
}
