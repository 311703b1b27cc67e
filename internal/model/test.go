package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	ClubID         uint           `json:"club_id" gorm:"not null;index"`
	Club           Club           `json:"club,omitempty" gorm:"foreignKey:ClubID"`
	RoundNumber    int            `json:"round_number" gorm:"not null"`
	RoundType      string         `json:"round_type" gorm:"not null"` // "quiz", "interview_task", "assignment"
	Instructions   string         `json:"instructions" gorm:"type:text"`
	Graded         bool           `json:"graded" gorm:"default:false"`
	ScheduledStart time.Time      `json:"scheduled_start" gorm:"not null;index"`
	ScheduledEnd   time.Time      `json:"scheduled_end" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
