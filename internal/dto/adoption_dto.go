package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/models"
)

type AdoptionReference struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type AdoptionRequest struct {
	AnimalID   *uuid.UUID          `json:"animal_id,omitempty"`
	FullName   string              `json:"full_name"`
	Phone      string              `json:"phone"`
	Email      string              `json:"email"`
	Address    string              `json:"address,omitempty"`
	Household  string              `json:"household,omitempty"`
	Experience string              `json:"experience,omitempty"`
	References []AdoptionReference `json:"references,omitempty"`
}

type AdoptionDecisionRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

type AdoptionResponse struct {
	ID             uuid.UUID             `json:"id"`
	AnimalID       *uuid.UUID            `json:"animal_id,omitempty"`
	FullName       string                `json:"full_name"`
	Phone          string                `json:"phone"`
	Email          string                `json:"email"`
	Status         models.AdoptionStatus `json:"status"`
	DecisionReason string                `json:"decision_reason,omitempty"`
	ReviewedAt     *time.Time            `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

func NewAdoptionResponse(a *models.AdoptionApplication) AdoptionResponse {
	return AdoptionResponse{
		ID:             a.ID,
		AnimalID:       a.AnimalID,
		FullName:       a.FullName,
		Phone:          a.Phone,
		Email:          a.Email,
		Status:         a.Status,
		DecisionReason: a.DecisionReason,
		ReviewedAt:     a.ReviewedAt,
		CreatedAt:      a.CreatedAt,
	}
}

type AdoptionListResponse struct {
	Applications []AdoptionResponse `json:"applications"`
	Total        int64              `json:"total"`
}
