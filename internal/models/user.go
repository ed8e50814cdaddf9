package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User covers both citizen submitters and staff moderators; the Role
// field distinguishes them.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"size:100" json:"name,omitempty"`
	Role      string         `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
