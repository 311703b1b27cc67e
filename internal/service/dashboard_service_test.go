package service

import (
	"testing"
	"time"

	"github.com/lshigami/Servals/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardBucketsAndOrder(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.ledgerRepo)

	// Two more tests by the same club; the student interacts with all three
	// in a known order and ends up in different states on each.
	second := model.Test{
		ClubID: f.club.ID, RoundNumber: 2, RoundType: "assignment",
		ScheduledStart: windowOpen, ScheduledEnd: windowClose,
	}
	require.NoError(t, f.db.Create(&second).Error)
	third := model.Test{
		ClubID: f.club.ID, RoundNumber: 3, RoundType: "quiz",
		ScheduledStart: windowOpen, ScheduledEnd: windowClose,
	}
	require.NoError(t, f.db.Create(&third).Error)

	clock := windowOpen.Add(-time.Hour)
	transitions := f.transitions(&clock)

	for _, testID := range []uint{third.ID, f.test.ID, second.ID} {
		_, err := transitions.Apply(testID, f.student.ID)
		require.NoError(t, err)
	}

	clock = windowOpen.Add(10 * time.Minute)
	_, err := transitions.Start(f.test.ID, f.student.ID)
	require.NoError(t, err)
	_, err = transitions.Start(second.ID, f.student.ID)
	require.NoError(t, err)
	_, err = transitions.Finish(second.ID, f.student.ID)
	require.NoError(t, err)

	// Applied bucket: only the third test, the one never started.
	applied, err := svc.AppliedTests(f.student.ID)
	require.NoError(t, err)
	require.Len(t, applied.Tests, 1)
	assert.Equal(t, third.ID, applied.Tests[0].TestID)
	assert.Nil(t, applied.Tests[0].StartedOn)

	// Started bucket: only the first test; the finished one dropped out.
	started, err := svc.StartedTests(f.student.ID)
	require.NoError(t, err)
	require.Len(t, started.Tests, 1)
	assert.Equal(t, f.test.ID, started.Tests[0].TestID)
	assert.NotNil(t, started.Tests[0].StartedOn)
	assert.Nil(t, started.Tests[0].SubmittedOn)
}

func TestDashboardPreservesApplicationOrder(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.ledgerRepo)

	var ids []uint
	for i := 2; i <= 4; i++ {
		tst := model.Test{
			ClubID: f.club.ID, RoundNumber: i, RoundType: "quiz",
			ScheduledStart: windowOpen, ScheduledEnd: windowClose,
		}
		require.NoError(t, f.db.Create(&tst).Error)
		ids = append(ids, tst.ID)
	}

	clock := windowOpen.Add(-time.Hour)
	transitions := f.transitions(&clock)

	// Apply in a deliberate non-sorted order.
	order := []uint{ids[1], ids[2], ids[0]}
	for _, testID := range order {
		_, err := transitions.Apply(testID, f.student.ID)
		require.NoError(t, err)
	}

	applied, err := svc.AppliedTests(f.student.ID)
	require.NoError(t, err)
	require.Len(t, applied.Tests, len(order))
	for i, testID := range order {
		assert.Equal(t, testID, applied.Tests[i].TestID, "bucket order must follow application order")
	}
}

func TestDashboardEmptyForNewStudent(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.ledgerRepo)

	applied, err := svc.AppliedTests(f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, applied.Tests)

	started, err := svc.StartedTests(f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, started.Tests)
}
