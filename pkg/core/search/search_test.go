package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterops/rosterd/pkg/core/model"
	"github.com/rosterops/rosterd/pkg/core/scorer"
)

func searchRoster(shifts ...*model.Shift) *model.Roster {
	return &model.Roster{
		TenantID:  "tenant-a",
		Config:    model.DefaultConstraintConfiguration("tenant-a"),
		Employees: []*model.Employee{{ID: "e1"}},
		Spots:     []*model.Spot{{ID: "p1"}},
		Shifts:    shifts,
	}
}

func unassignedShift(id string, day int) *model.Shift {
	return &model.Shift{
		ID: id, SpotID: "p1",
		Start: time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, day, 17, 0, 0, 0, time.UTC),
	}
}

func TestLocalSearch_AssignsOpenShifts(t *testing.T) {
	r := searchRoster(unassignedShift("s1", 4), unassignedShift("s2", 5))
	ls := NewLocalSearch(2000, 500, 42, nil)

	var improvements []scorer.Score
	err := ls.Run(context.Background(), r, scorer.NewDefaultScorer(),
		func(improved *model.Roster, score scorer.Score) {
			improvements = append(improvements, score)
		})
	require.NoError(t, err)

	require.NotEmpty(t, improvements)
	for _, s := range r.Shifts {
		assert.True(t, s.Assigned(), "shift %s should be assigned", s.ID)
	}

	// Improvements are strictly ordered best-last
	for i := 1; i < len(improvements); i++ {
		assert.True(t, improvements[i].Better(improvements[i-1]))
	}
}

func TestLocalSearch_ImprovedSnapshotsAreDetached(t *testing.T) {
	r := searchRoster(unassignedShift("s1", 4))
	ls := NewLocalSearch(1000, 200, 7, nil)

	var snapshots []*model.Roster
	err := ls.Run(context.Background(), r, scorer.NewDefaultScorer(),
		func(improved *model.Roster, score scorer.Score) {
			snapshots = append(snapshots, improved)
		})
	require.NoError(t, err)
	require.NotEmpty(t, snapshots)

	// Mutating the working roster afterwards must not change a snapshot
	snapshot := snapshots[len(snapshots)-1]
	wasAssigned := snapshot.Shifts[0].EmployeeID
	r.Shifts[0].EmployeeID = "someone-else"
	assert.Equal(t, wasAssigned, snapshot.Shifts[0].EmployeeID)
}

func TestLocalSearch_NeverTouchesPinnedShifts(t *testing.T) {
	pinned := unassignedShift("s1", 4)
	pinned.Pinned = true
	r := searchRoster(pinned)
	ls := NewLocalSearch(1000, 200, 1, nil)

	err := ls.Run(context.Background(), r, scorer.NewDefaultScorer(),
		func(*model.Roster, scorer.Score) {})
	require.NoError(t, err)

	assert.False(t, pinned.Assigned())
}

func TestLocalSearch_CancelledContextReturnsImmediately(t *testing.T) {
	r := searchRoster(unassignedShift("s1", 4))
	ls := NewLocalSearch(1_000_000, 1_000_000, 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := ls.Run(ctx, r, scorer.NewDefaultScorer(),
		func(*model.Roster, scorer.Score) { calls++ })
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestLocalSearch_MalformedShiftAbortsRun(t *testing.T) {
	bad := &model.Shift{
		ID: "s1", SpotID: "p1",
		Start: time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
	}
	r := searchRoster(bad)
	ls := NewLocalSearch(100, 50, 1, nil)

	err := ls.Run(context.Background(), r, scorer.NewDefaultScorer(),
		func(*model.Roster, scorer.Score) {})
	assert.ErrorContains(t, err, "malformed")
}

func TestLocalSearch_MaintainsHourLoadThroughMoves(t *testing.T) {
	r := searchRoster(unassignedShift("s1", 4), unassignedShift("s2", 5))
	ls := NewLocalSearch(2000, 500, 42, nil)

	err := ls.Run(context.Background(), r, scorer.NewDefaultScorer(),
		func(*model.Roster, scorer.Score) {})
	require.NoError(t, err)

	// Both 8-hour shifts assigned on separate days: 16 occupied buckets
	tracker := r.HourLoad()
	require.NotNil(t, tracker)
	assert.Equal(t, int64(4000), tracker.LoadBalance())
}
