package service

import (
	"testing"
	"time"

	"github.com/lshigami/Servals/internal/lifecycle"
	"github.com/lshigami/Servals/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileReportsHealthyPair(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(-time.Hour)
	transitions := f.transitions(&clock)
	svc := NewReconcileService(f.testRepo, f.rosterRepo, f.ledgerRepo)

	_, err := transitions.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)

	report, err := svc.Report(f.club.ID, f.test.ID, f.student.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.False(t, report.Repaired)
	assert.Equal(t, string(lifecycle.StateApplied), report.RosterState)
	assert.Equal(t, lifecycle.StatusApplied, report.LedgerStatus)
}

func TestReconcileRepairsDivergedLedger(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(-time.Hour)
	transitions := f.transitions(&clock)
	svc := NewReconcileService(f.testRepo, f.rosterRepo, f.ledgerRepo)

	_, err := transitions.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)
	clock = windowOpen.Add(10 * time.Minute)
	_, err = transitions.Start(f.test.ID, f.student.ID)
	require.NoError(t, err)

	// Simulate the half-committed write repair exists for: roster says
	// started, ledger still says Applied with no started_on.
	require.NoError(t, f.db.Model(&model.LedgerEntry{}).
		Where("student_id = ? AND test_id = ?", f.student.ID, f.test.ID).
		Updates(map[string]interface{}{"status": lifecycle.StatusApplied, "started_on": nil}).Error)

	report, err := svc.Report(f.club.ID, f.test.ID, f.student.ID)
	require.NoError(t, err)
	assert.False(t, report.Consistent)

	repaired, err := svc.Repair(f.club.ID, f.test.ID, f.student.ID)
	require.NoError(t, err)
	assert.True(t, repaired.Repaired)
	assert.True(t, repaired.Consistent)
	assert.Equal(t, lifecycle.StatusStarted, repaired.LedgerStatus)

	// The rewritten entry satisfies the timestamp invariant again.
	entry, err := f.ledgerRepo.FindByStudentAndTest(f.student.ID, f.test.ID)
	require.NoError(t, err)
	require.NotNil(t, entry.StartedOn)
	assert.Nil(t, entry.SubmittedOn)
	assert.Equal(t, entry.Status, lifecycle.StatusFromTimestamps(entry.StartedOn, entry.SubmittedOn))
}

func TestReconcileRepairIsNoOpWhenConsistent(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(-time.Hour)
	transitions := f.transitions(&clock)
	svc := NewReconcileService(f.testRepo, f.rosterRepo, f.ledgerRepo)

	_, err := transitions.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)

	report, err := svc.Repair(f.club.ID, f.test.ID, f.student.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.False(t, report.Repaired)
}

func TestReconcileDoesNotInventMissingRecords(t *testing.T) {
	f := newFixture(t)
	svc := NewReconcileService(f.testRepo, f.rosterRepo, f.ledgerRepo)

	// Pair with no history at all: consistent, nothing to do.
	report, err := svc.Report(f.club.ID, f.test.ID, f.student.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)

	// Roster row exists with no ledger entry: divergence reported but not
	// auto-repaired, one side is missing entirely.
	require.NoError(t, f.db.Create(&model.TestParticipant{
		TestID: f.test.ID, StudentID: f.student.ID, State: string(lifecycle.StateApplied),
	}).Error)

	report, err = svc.Repair(f.club.ID, f.test.ID, f.student.ID)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.False(t, report.Repaired)
}

func TestReconcileScopedToOwningClub(t *testing.T) {
	f := newFixture(t)
	svc := NewReconcileService(f.testRepo, f.rosterRepo, f.ledgerRepo)

	other := model.Club{Name: "Drama Club", Email: "drama@campus.edu"}
	require.NoError(t, f.db.Create(&other).Error)

	_, err := svc.Report(other.ID, f.test.ID, f.student.ID)
	assert.ErrorIs(t, err, ErrTestNotFound)
}
