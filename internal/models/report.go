package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReportKind discriminates the three citizen report variants.
type ReportKind string

const (
	KindLost  ReportKind = "lost"
	KindFound ReportKind = "found"
	KindAbuse ReportKind = "abuse"
)

func (k ReportKind) Valid() bool {
	return k == KindLost || k == KindFound || k == KindAbuse
}

// ReportStatus is the moderation state of a report. Transitions are
// direct overwrites; the store enforces no ordering between them.
type ReportStatus string

const (
	StatusOpen          ReportStatus = "open"
	StatusPending       ReportStatus = "pending"
	StatusInvestigating ReportStatus = "investigating"
	StatusResolved      ReportStatus = "resolved"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusPending, StatusInvestigating, StatusResolved:
		return true
	}
	return false
}

// Report is a citizen submission about a lost, found, or abused animal.
// Kind-specific descriptive fields (breed, colors, location name, date,
// time, ...) live in the Details JSON document produced by the
// submission builder; common fields are flat columns.
type Report struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Kind         ReportKind   `gorm:"size:10;not null;index" json:"kind"`
	SubmissionID string       `gorm:"size:64;not null;uniqueIndex" json:"submission_id"`
	AnimalType   string       `gorm:"size:50" json:"animal_type,omitempty"`
	AnimalName   string       `gorm:"size:100" json:"animal_name,omitempty"`
	ContactName  string       `gorm:"size:100;not null" json:"contact_name"`
	ContactPhone string       `gorm:"size:30;not null" json:"contact_phone"`
	ContactEmail string       `gorm:"size:255;not null" json:"contact_email"`
	Status       ReportStatus `gorm:"size:20;not null;default:'open';index" json:"status"`
	Published    bool         `gorm:"not null;default:true" json:"published"`
	CreatedBy    *uuid.UUID   `gorm:"type:uuid;index" json:"created_by,omitempty"`

	// UploadObjectKey stays nil until the evidence upload phase has
	// succeeded and the key has been attached.
	UploadObjectKey *string `gorm:"size:255" json:"upload_object_key,omitempty"`

	// EvidenceURL carries a pre-resolved URL on records created before
	// the keyed-upload scheme existed. When set it bypasses signing.
	EvidenceURL *string `gorm:"size:1024" json:"evidence_url,omitempty"`

	Details   datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"details"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
