package model

import (
	"time"
)

// LedgerEntry is one row of a student's test history. At most one entry per
// (student, test) pair. Status must always agree with the roster row for the
// same pair; the transition service updates both inside one transaction.
type LedgerEntry struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	StudentID   uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_student_test"`
	TestID      uint       `json:"test_id" gorm:"not null;uniqueIndex:idx_student_test"`
	ClubID      uint       `json:"club_id" gorm:"not null;index"`
	Status      string     `json:"status" gorm:"not null;index"` // "Applied", "Started", "Finished"
	AppliedOn   time.Time  `json:"applied_on" gorm:"not null"`
	StartedOn   *time.Time `json:"started_on,omitempty"`
	SubmittedOn *time.Time `json:"submitted_on,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
