package repository

import (
	"errors"
	"time"

	"github.com/lshigami/Servals/internal/lifecycle"
	"github.com/lshigami/Servals/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository owns the ledger_entries table. Same transaction-handle
// convention as RosterRepository: write methods run on the caller's handle so
// roster and ledger move together or not at all.
type LedgerRepository interface {
	FindByStudent(studentID uint) ([]model.LedgerEntry, error)
	FindByStudentAndStatus(studentID uint, status string) ([]model.LedgerEntry, error)
	FindByStudentAndTest(studentID, testID uint) (*model.LedgerEntry, error)
	Insert(tx *gorm.DB, entry *model.LedgerEntry) (bool, error)
	MarkStarted(tx *gorm.DB, studentID, testID uint, now time.Time) (bool, error)
	MarkFinished(tx *gorm.DB, studentID, testID uint, now time.Time) (bool, error)
	Save(entry *model.LedgerEntry) error
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// FindByStudent returns the student's full history in insertion order, i.e.
// ordered by when they first touched each test.
func (r *ledgerRepository) FindByStudent(studentID uint) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := r.db.Where("student_id = ?", studentID).Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) FindByStudentAndStatus(studentID uint, status string) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := r.db.Where("student_id = ? AND status = ?", studentID, status).
		Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) FindByStudentAndTest(studentID, testID uint) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	err := r.db.Where("student_id = ? AND test_id = ?", studentID, testID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Insert creates the pair's ledger entry. Returns false when an entry already
// exists for the pair.
func (r *ledgerRepository) Insert(tx *gorm.DB, entry *model.LedgerEntry) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkStarted stamps started_on and flips the status, conditioned on the
// entry still being Applied. started_on is therefore set exactly once.
func (r *ledgerRepository) MarkStarted(tx *gorm.DB, studentID, testID uint, now time.Time) (bool, error) {
	res := tx.Model(&model.LedgerEntry{}).
		Where("student_id = ? AND test_id = ? AND status = ?", studentID, testID, lifecycle.StatusApplied).
		Updates(map[string]interface{}{"status": lifecycle.StatusStarted, "started_on": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkFinished stamps submitted_on, conditioned on the entry being Started.
func (r *ledgerRepository) MarkFinished(tx *gorm.DB, studentID, testID uint, now time.Time) (bool, error) {
	res := tx.Model(&model.LedgerEntry{}).
		Where("student_id = ? AND test_id = ? AND status = ?", studentID, testID, lifecycle.StatusStarted).
		Updates(map[string]interface{}{"status": lifecycle.StatusFinished, "submitted_on": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Save rewrites a whole entry. Only the reconciliation path uses this.
func (r *ledgerRepository) Save(entry *model.LedgerEntry) error {
	return r.db.Save(entry).Error
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
