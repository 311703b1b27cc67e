package repository

import (
	"errors"

	"github.com/lshigami/Servals/internal/lifecycle"
	"github.com/lshigami/Servals/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RosterRepository owns the test_participants table. The write methods take
// an explicit handle so the transition service can run them inside one
// transaction together with the matching ledger write; each write is a single
// conditional statement whose rows-affected count decides a race, never a
// read-then-write pair.
type RosterRepository interface {
	StateOf(testID, studentID uint) (lifecycle.State, error)
	InsertApplied(tx *gorm.DB, testID, studentID uint) (bool, error)
	Move(tx *gorm.DB, testID, studentID uint, from, to lifecycle.State) (bool, error)
	CountByState(testID uint, state lifecycle.State) (int64, error)
}

type rosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) RosterRepository {
	return &rosterRepository{db: db}
}

// StateOf returns StateNone when the student has no roster row for the test.
func (r *rosterRepository) StateOf(testID, studentID uint) (lifecycle.State, error) {
	var row model.TestParticipant
	err := r.db.Where("test_id = ? AND student_id = ?", testID, studentID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lifecycle.StateNone, nil
	}
	if err != nil {
		return lifecycle.StateNone, err
	}
	return lifecycle.State(row.State), nil
}

// InsertApplied adds the student to the applied set. Returns false when a row
// for the pair already exists (the unique index decides, so of two racing
// applies exactly one sees true).
func (r *rosterRepository) InsertApplied(tx *gorm.DB, testID, studentID uint) (bool, error) {
	row := model.TestParticipant{
		TestID:    testID,
		StudentID: studentID,
		State:     string(lifecycle.StateApplied),
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Move flips the pair's state column from one set to another. Returns false
// when the row was not in the expected source state, which is how the loser
// of two concurrent identical transitions finds out.
func (r *rosterRepository) Move(tx *gorm.DB, testID, studentID uint, from, to lifecycle.State) (bool, error) {
	res := tx.Model(&model.TestParticipant{}).
		Where("test_id = ? AND student_id = ? AND state = ?", testID, studentID, string(from)).
		Update("state", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *rosterRepository) CountByState(testID uint, state lifecycle.State) (int64, error) {
	var n int64
	err := r.db.Model(&model.TestParticipant{}).
		Where("test_id = ? AND state = ?", testID, string(state)).
		Count(&n).Error
	return n, err
}
