package model

import (
	"time"

	"gorm.io/gorm"
)

// TestDomain is a question section of a test ("aptitude", "design", ...).
// Owned by the question-authoring subsystem; the lifecycle only reads these
// to hand back with a started attempt.
type TestDomain struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	TestID       uint           `json:"test_id" gorm:"not null;index"`
	Name         string         `json:"name" gorm:"not null"`
	Instructions string         `json:"instructions,omitempty" gorm:"type:text"`
	DomainMarks  int            `json:"domain_marks"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
