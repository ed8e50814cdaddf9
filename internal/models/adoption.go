package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdoptionStatus has one non-terminal state; approved and rejected are
// both terminal.
type AdoptionStatus string

const (
	AdoptionPending  AdoptionStatus = "pending"
	AdoptionApproved AdoptionStatus = "approved"
	AdoptionRejected AdoptionStatus = "rejected"
)

// AdoptionApplication is a citizen request to adopt an animal. A
// decision requires a non-empty reason; ReviewedBy and ReviewedAt are
// set in the same update as the status.
type AdoptionApplication struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AnimalID   *uuid.UUID `gorm:"type:uuid;index" json:"animal_id,omitempty"`
	FullName   string     `gorm:"size:100;not null" json:"full_name"`
	Phone      string     `gorm:"size:30;not null" json:"phone"`
	Email      string     `gorm:"size:255;not null" json:"email"`
	Address    string     `gorm:"size:255" json:"address,omitempty"`
	Household  string     `gorm:"size:500" json:"household,omitempty"`
	Experience string     `gorm:"size:1000" json:"experience,omitempty"`

	// References is a JSON list of {name, phone} entries.
	References datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"references"`

	Status         AdoptionStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DecisionReason string         `gorm:"size:1000" json:"decision_reason,omitempty"`
	ReviewedBy     *uuid.UUID     `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty"`
	CreatedBy      *uuid.UUID     `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
