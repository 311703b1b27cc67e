package model

import (
	"time"

	"gorm.io/gorm"
)

// Club owns tests. Signup, verification and profile management live in a
// separate service; this record only carries what the test lifecycle reads.
type Club struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Type      string         `json:"type,omitempty"` // "technical", "cultural", ...
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
