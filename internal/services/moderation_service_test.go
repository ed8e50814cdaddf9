package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReport(t *testing.T, records *fakeRecordStore) *models.Report {
	t.Helper()
	report := &models.Report{
		Kind:         models.KindLost,
		SubmissionID: uuid.NewString(),
		AnimalName:   "Buddy",
		ContactName:  "Jane Mercer",
		ContactPhone: "+1-555-0102",
		ContactEmail: "jane@example.com",
		Status:       models.StatusOpen,
		Published:    true,
	}
	require.NoError(t, records.CreateReport(context.Background(), report))
	return report
}

func TestSetStatusAllowsAnyTransition(t *testing.T) {
	records := newFakeRecordStore()
	pub := &fakePublisher{}
	svc := NewModerationService(records, pub, time.Second)
	report := seedReport(t, records)

	// open -> resolved skips the intermediate states on purpose
	require.NoError(t, svc.SetStatus(context.Background(), report.ID, models.StatusResolved))
	// and straight back again
	require.NoError(t, svc.SetStatus(context.Background(), report.ID, models.StatusPending))

	got, err := svc.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, []string{"updated", "updated"}, pub.types())
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	records := newFakeRecordStore()
	svc := NewModerationService(records, &fakePublisher{}, time.Second)
	report := seedReport(t, records)

	err := svc.SetStatus(context.Background(), report.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatusMissingReport(t *testing.T) {
	svc := NewModerationService(newFakeRecordStore(), &fakePublisher{}, time.Second)
	err := svc.SetStatus(context.Background(), uuid.New(), models.StatusResolved)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestSetPublished(t *testing.T) {
	records := newFakeRecordStore()
	svc := NewModerationService(records, &fakePublisher{}, time.Second)
	report := seedReport(t, records)

	require.NoError(t, svc.SetPublished(context.Background(), report.ID, false))

	got, err := svc.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.False(t, got.Published)
}

func TestEditReportPartialUpdate(t *testing.T) {
	records := newFakeRecordStore()
	svc := NewModerationService(records, &fakePublisher{}, time.Second)
	report := seedReport(t, records)

	name := "Max"
	require.NoError(t, svc.EditReport(context.Background(), report.ID, &dto.EditReportRequest{AnimalName: &name}))

	got, err := svc.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Max", got.AnimalName)
	assert.Equal(t, "Jane Mercer", got.ContactName, "untouched fields survive")
}

func TestEditReportRejectsEmptyUpdate(t *testing.T) {
	records := newFakeRecordStore()
	svc := NewModerationService(records, &fakePublisher{}, time.Second)
	report := seedReport(t, records)

	err := svc.EditReport(context.Background(), report.ID, &dto.EditReportRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteThenUndoRestoresReport(t *testing.T) {
	records := newFakeRecordStore()
	pub := &fakePublisher{}
	svc := NewModerationService(records, pub, time.Minute)
	report := seedReport(t, records)

	require.NoError(t, svc.DeleteReport(context.Background(), report.ID))
	_, err := svc.GetReport(context.Background(), report.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)

	restored, err := svc.UndoDelete(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, report.ID, restored.ID, "restore creates a new record")
	assert.Equal(t, "Buddy", restored.AnimalName)
	assert.Equal(t, []string{"deleted", "created"}, pub.types())
}

func TestUndoWithEmptyBuffer(t *testing.T) {
	svc := NewModerationService(newFakeRecordStore(), &fakePublisher{}, time.Minute)
	_, err := svc.UndoDelete(context.Background())
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestUndoAfterGraceWindowExpires(t *testing.T) {
	records := newFakeRecordStore()
	svc := NewModerationService(records, &fakePublisher{}, 10*time.Millisecond)
	report := seedReport(t, records)

	require.NoError(t, svc.DeleteReport(context.Background(), report.ID))
	time.Sleep(50 * time.Millisecond)

	_, err := svc.UndoDelete(context.Background())
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestSecondDeleteReplacesUndoBuffer(t *testing.T) {
	records := newFakeRecordStore()
	svc := NewModerationService(records, &fakePublisher{}, time.Minute)
	first := seedReport(t, records)
	second := seedReport(t, records)

	require.NoError(t, svc.DeleteReport(context.Background(), first.ID))
	require.NoError(t, svc.DeleteReport(context.Background(), second.ID))

	restored, err := svc.UndoDelete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.SubmissionID, restored.SubmissionID, "only the latest delete is undoable")

	_, err = svc.UndoDelete(context.Background())
	assert.ErrorIs(t, err, ErrNothingToUndo)
}
