package service

import (
	"testing"
	"time"

	"github.com/lshigami/Servals/internal/dto"
	"github.com/lshigami/Servals/internal/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTestValidatesWindow(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminTestService(f.testRepo, f.rosterRepo)

	req := dto.TestCreateDTO{
		RoundNumber:    2,
		RoundType:      "assignment",
		Instructions:   "take-home, 48 hours",
		ScheduledStart: windowClose,
		ScheduledEnd:   windowOpen, // inverted
	}
	_, err := svc.CreateTest(f.club.ID, req)
	require.Error(t, err)

	req.ScheduledEnd = req.ScheduledStart // zero-length window
	_, err = svc.CreateTest(f.club.ID, req)
	require.Error(t, err)

	req.ScheduledStart = windowOpen
	req.ScheduledEnd = windowClose
	resp, err := svc.CreateTest(f.club.ID, req)
	require.NoError(t, err)
	assert.Equal(t, f.club.ID, resp.ClubID)
	assert.Equal(t, 2, resp.RoundNumber)
}

func TestGetTestScopedToOwner(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminTestService(f.testRepo, f.rosterRepo)

	resp, err := svc.GetTest(f.club.ID, f.test.ID)
	require.NoError(t, err)
	assert.Equal(t, f.test.ID, resp.ID)

	_, err = svc.GetTest(f.club.ID+1, f.test.ID)
	assert.ErrorIs(t, err, ErrTestNotFound)
	_, err = svc.GetTest(f.club.ID, 9999)
	assert.ErrorIs(t, err, ErrTestNotFound)
}

func TestListTestsCountsRosterStates(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminTestService(f.testRepo, f.rosterRepo)

	clock := windowOpen.Add(-time.Hour)
	transitions := f.transitions(&clock)

	// Three students: one applies, one starts, one finishes.
	a := f.student
	b := f.newStudent(t, "vikram")
	c := f.newStudent(t, "meera")
	for _, s := range []uint{a.ID, b.ID, c.ID} {
		_, err := transitions.Apply(f.test.ID, s)
		require.NoError(t, err)
	}
	clock = windowOpen.Add(5 * time.Minute)
	_, err := transitions.Start(f.test.ID, b.ID)
	require.NoError(t, err)
	_, err = transitions.Start(f.test.ID, c.ID)
	require.NoError(t, err)
	_, err = transitions.Finish(f.test.ID, c.ID)
	require.NoError(t, err)

	summaries, err := svc.ListTests(f.club.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.EqualValues(t, 1, summaries[0].AppliedCount)
	assert.EqualValues(t, 1, summaries[0].StartedCount)
	assert.EqualValues(t, 1, summaries[0].FinishedCount)

	// Disjointness holds over the whole roster too.
	total := int64(0)
	for _, state := range []lifecycle.State{lifecycle.StateApplied, lifecycle.StateStarted, lifecycle.StateFinished} {
		n, err := f.rosterRepo.CountByState(f.test.ID, state)
		require.NoError(t, err)
		total += n
	}
	assert.EqualValues(t, 3, total, "each student counted in exactly one set")
}
