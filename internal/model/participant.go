package model

import (
	"time"
)

// TestParticipant is one row of a test's roster. A student holds at most one
// row per test (unique index), so the applied/started/finished sets are
// disjoint by construction and a transition is a single conditional update
// of the state column.
//
// No soft delete here: a resurrected roster row would collide with the
// unique index and break the one-row-per-pair guarantee.
type TestParticipant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TestID    uint      `json:"test_id" gorm:"not null;uniqueIndex:idx_test_student"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_test_student"`
	State     string    `json:"state" gorm:"not null;index"` // "applied", "started", "finished"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
