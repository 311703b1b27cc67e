package dto

import "time"

// TestCreateDTO is for a club creating a new recruitment test round.
type TestCreateDTO struct {
	RoundNumber    int       `json:"round_number" binding:"required,min=1"`
	RoundType      string    `json:"round_type" binding:"required,oneof=quiz interview_task assignment"`
	Instructions   string    `json:"instructions" binding:"required"`
	Graded         bool      `json:"graded"`
	ScheduledStart time.Time `json:"scheduled_start" binding:"required"`
	ScheduledEnd   time.Time `json:"scheduled_end" binding:"required"`
}
