package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adoptionRequest() *dto.AdoptionRequest {
	return &dto.AdoptionRequest{
		FullName: "Sam Ortega",
		Phone:    "+1-555-0188",
		Email:    "sam@example.com",
		References: []dto.AdoptionReference{
			{Name: "Dr. Reyes", Phone: "+1-555-0113"},
		},
	}
}

func TestAdoptionSubmit(t *testing.T) {
	svc := NewAdoptionService(newFakeRecordStore())

	app, err := svc.Submit(context.Background(), adoptionRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionPending, app.Status)
	assert.JSONEq(t, `[{"name":"Dr. Reyes","phone":"+1-555-0113"}]`, string(app.References))
}

func TestAdoptionSubmitValidation(t *testing.T) {
	svc := NewAdoptionService(newFakeRecordStore())

	req := adoptionRequest()
	req.Phone = ""
	_, err := svc.Submit(context.Background(), req, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdoptionDecide(t *testing.T) {
	records := newFakeRecordStore()
	svc := NewAdoptionService(records)
	reviewer := uuid.New()

	app, err := svc.Submit(context.Background(), adoptionRequest(), nil)
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), app.ID, &dto.AdoptionDecisionRequest{
		Decision: "approved",
		Reason:   "Home visit passed",
	}, reviewer)
	require.NoError(t, err)

	assert.Equal(t, models.AdoptionApproved, decided.Status)
	assert.Equal(t, "Home visit passed", decided.DecisionReason)
	require.NotNil(t, decided.ReviewedBy)
	assert.Equal(t, reviewer, *decided.ReviewedBy)
	assert.NotNil(t, decided.ReviewedAt)
}

func TestAdoptionDecideRequiresReason(t *testing.T) {
	svc := NewAdoptionService(newFakeRecordStore())
	_, err := svc.Decide(context.Background(), uuid.New(), &dto.AdoptionDecisionRequest{
		Decision: "rejected",
		Reason:   "  ",
	}, uuid.New())
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestAdoptionDecideRejectsUnknownDecision(t *testing.T) {
	svc := NewAdoptionService(newFakeRecordStore())
	_, err := svc.Decide(context.Background(), uuid.New(), &dto.AdoptionDecisionRequest{
		Decision: "pending",
		Reason:   "cannot go back",
	}, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestAdoptionDecideIsSingleShot(t *testing.T) {
	svc := NewAdoptionService(newFakeRecordStore())
	reviewer := uuid.New()

	app, err := svc.Submit(context.Background(), adoptionRequest(), nil)
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), app.ID, &dto.AdoptionDecisionRequest{
		Decision: "rejected", Reason: "No fenced yard",
	}, reviewer)
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), app.ID, &dto.AdoptionDecisionRequest{
		Decision: "approved", Reason: "Changed our mind",
	}, reviewer)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestAdoptionDecideMissingApplication(t *testing.T) {
	svc := NewAdoptionService(newFakeRecordStore())
	_, err := svc.Decide(context.Background(), uuid.New(), &dto.AdoptionDecisionRequest{
		Decision: "approved", Reason: "looks great",
	}, uuid.New())
	assert.ErrorIs(t, err, ErrAdoptionNotFound)
}
