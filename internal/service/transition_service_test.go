package service

import (
	"sync"
	"testing"
	"time"

	"github.com/lshigami/Servals/internal/lifecycle"
	"github.com/lshigami/Servals/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStartSubmitScenario(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(-time.Hour) // 09:00
	svc := f.transitions(&clock)

	// Apply at 09:00.
	applyResp, err := svc.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusApplied, applyResp.Status)
	assert.Equal(t, clock, applyResp.AppliedOn.UTC())
	f.assertConsistent(t, lifecycle.StateApplied)

	// Attempt at 09:30 — before the window.
	clock = windowOpen.Add(-30 * time.Minute)
	_, err = svc.Start(f.test.ID, f.student.ID)
	assertRejected(t, err, lifecycle.CodeNotYetOpen)
	f.assertConsistent(t, lifecycle.StateApplied)

	// Attempt at 10:15 — inside the window.
	clock = windowOpen.Add(15 * time.Minute)
	startResp, err := svc.Start(f.test.ID, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusStarted, startResp.Status)
	assert.Equal(t, f.test.ID, startResp.TestDetails.ID)
	assert.Equal(t, "Robotics Club", startResp.ClubDetails.Name)
	require.Len(t, startResp.Domains, 1)
	assert.Equal(t, "aptitude", startResp.Domains[0].Name)
	f.assertConsistent(t, lifecycle.StateStarted)

	// Attempt again at 10:20.
	clock = windowOpen.Add(20 * time.Minute)
	_, err = svc.Start(f.test.ID, f.student.ID)
	assertRejected(t, err, lifecycle.CodeAlreadyAttempted)

	// Submit at 11:10 — after close, allowed for a started attempt.
	clock = windowClose.Add(10 * time.Minute)
	finishResp, err := svc.Finish(f.test.ID, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusFinished, finishResp.Status)
	assert.Equal(t, clock, finishResp.SubmittedOn.UTC())
	f.assertConsistent(t, lifecycle.StateFinished)

	// Timestamps are all set and ordered.
	entry, err := f.ledgerRepo.FindByStudentAndTest(f.student.ID, f.test.ID)
	require.NoError(t, err)
	require.NotNil(t, entry.StartedOn)
	require.NotNil(t, entry.SubmittedOn)
	assert.True(t, entry.AppliedOn.Before(*entry.StartedOn))
	assert.True(t, entry.StartedOn.Before(*entry.SubmittedOn))
}

func TestStartWithoutApplying(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(15 * time.Minute)
	svc := f.transitions(&clock)

	_, err := svc.Start(f.test.ID, f.student.ID)
	assertRejected(t, err, lifecycle.CodeNotApplied)

	state, serr := f.rosterRepo.StateOf(f.test.ID, f.student.ID)
	require.NoError(t, serr)
	assert.Equal(t, lifecycle.StateNone, state)
}

func TestApplyIsIdempotentlyRejected(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(-time.Hour)
	svc := f.transitions(&clock)

	_, err := svc.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)
	_, err = svc.Apply(f.test.ID, f.student.ID)
	assertRejected(t, err, lifecycle.CodeAlreadyApplied)

	// Second call changed nothing: still one roster row, one ledger entry.
	var rosterRows, ledgerRows int64
	require.NoError(t, f.db.Model(&model.TestParticipant{}).Where("test_id = ?", f.test.ID).Count(&rosterRows).Error)
	require.NoError(t, f.db.Model(&model.LedgerEntry{}).Where("test_id = ?", f.test.ID).Count(&ledgerRows).Error)
	assert.EqualValues(t, 1, rosterRows)
	assert.EqualValues(t, 1, ledgerRows)
	f.assertConsistent(t, lifecycle.StateApplied)
}

func TestStartAtWindowEdges(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(-time.Hour)
	svc := f.transitions(&clock)
	_, err := svc.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)

	// At the exact close instant the window is over.
	clock = windowClose
	_, err = svc.Start(f.test.ID, f.student.ID)
	assertRejected(t, err, lifecycle.CodeWindowClosed)

	// The exact open instant is allowed.
	clock = windowOpen
	_, err = svc.Start(f.test.ID, f.student.ID)
	require.NoError(t, err)
}

func TestFinishWithoutStarting(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(-time.Hour)
	svc := f.transitions(&clock)

	_, err := svc.Finish(f.test.ID, f.student.ID)
	assertRejected(t, err, lifecycle.CodeNotStarted)

	_, err = svc.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)
	_, err = svc.Finish(f.test.ID, f.student.ID)
	assertRejected(t, err, lifecycle.CodeNotStarted)
}

func TestUnknownTest(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen
	svc := f.transitions(&clock)

	_, err := svc.Apply(9999, f.student.ID)
	assert.ErrorIs(t, err, ErrTestNotFound)
	_, err = svc.Start(9999, f.student.ID)
	assert.ErrorIs(t, err, ErrTestNotFound)
	_, err = svc.Finish(9999, f.student.ID)
	assert.ErrorIs(t, err, ErrTestNotFound)
}

func TestConcurrentStartHasOneWinner(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(-time.Hour)
	svc := f.transitions(&clock)
	_, err := svc.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)

	clock = windowOpen.Add(15 * time.Minute)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Start(f.test.ID, f.student.ID)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		losses++
		rej, ok := lifecycle.AsRejection(err)
		require.True(t, ok, "loser must see a rejection, got %v", err)
		assert.Contains(t, []lifecycle.Code{lifecycle.CodeAlreadyAttempted, lifecycle.CodeTransitionFailed}, rej.Code)
	}
	assert.Equal(t, 1, wins, "exactly one start must win")
	assert.Equal(t, 1, losses)
	f.assertConsistent(t, lifecycle.StateStarted)
}

func TestStudentsProceedIndependently(t *testing.T) {
	f := newFixture(t)
	other := f.newStudent(t, "vikram")
	clock := windowOpen.Add(-time.Hour)
	svc := f.transitions(&clock)

	_, err := svc.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)
	_, err = svc.Apply(f.test.ID, other.ID)
	require.NoError(t, err)

	clock = windowOpen.Add(5 * time.Minute)
	_, err = svc.Start(f.test.ID, f.student.ID)
	require.NoError(t, err)

	// The other student is untouched by the first one's transition.
	state, serr := f.rosterRepo.StateOf(f.test.ID, other.ID)
	require.NoError(t, serr)
	assert.Equal(t, lifecycle.StateApplied, state)
}

func TestConsistencyFaultRollsBack(t *testing.T) {
	f := newFixture(t)
	clock := windowOpen.Add(-time.Hour)
	svc := f.transitions(&clock)
	_, err := svc.Apply(f.test.ID, f.student.ID)
	require.NoError(t, err)

	// Corrupt the pair: ledger says Started while the roster says applied.
	require.NoError(t, f.db.Model(&model.LedgerEntry{}).
		Where("student_id = ? AND test_id = ?", f.student.ID, f.test.ID).
		Update("status", lifecycle.StatusStarted).Error)

	clock = windowOpen.Add(15 * time.Minute)
	_, err = svc.Start(f.test.ID, f.student.ID)
	assert.ErrorIs(t, err, ErrInconsistentState)

	// The roster move was rolled back with the failed ledger update.
	state, serr := f.rosterRepo.StateOf(f.test.ID, f.student.ID)
	require.NoError(t, serr)
	assert.Equal(t, lifecycle.StateApplied, state)
}

// assertConsistent checks the cross-record invariant after a transition: one
// roster row in the expected state, and a ledger entry whose status agrees
// with both the roster and its own timestamps.
func (f *fixture) assertConsistent(t *testing.T, want lifecycle.State) {
	t.Helper()
	state, err := f.rosterRepo.StateOf(f.test.ID, f.student.ID)
	require.NoError(t, err)
	require.Equal(t, want, state)

	entry, err := f.ledgerRepo.FindByStudentAndTest(f.student.ID, f.test.ID)
	require.NoError(t, err)
	assert.True(t, lifecycle.Consistent(state, entry.Status),
		"roster %q disagrees with ledger %q", state, entry.Status)
	assert.Equal(t, entry.Status, lifecycle.StatusFromTimestamps(entry.StartedOn, entry.SubmittedOn))
}

func assertRejected(t *testing.T, err error, want lifecycle.Code) {
	t.Helper()
	require.Error(t, err)
	rej, ok := lifecycle.AsRejection(err)
	require.True(t, ok, "expected rejection, got %v", err)
	assert.Equal(t, want, rej.Code)
}
