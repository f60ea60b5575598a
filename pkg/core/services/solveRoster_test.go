package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterops/rosterd/pkg/core/model"
	"github.com/rosterops/rosterd/pkg/core/scorer"
	"github.com/rosterops/rosterd/pkg/core/solver"
)

type fakeRosterStore struct {
	roster *model.Roster
	err    error
}

func (f *fakeRosterStore) LoadRoster(ctx context.Context, tenantID string) (*model.Roster, error) {
	return f.roster, f.err
}

// noopLoop completes immediately without touching the roster
type noopLoop struct{}

func (noopLoop) Run(ctx context.Context, r *model.Roster, sc *scorer.Scorer, improved func(*model.Roster, scorer.Score)) error {
	return nil
}

func newTestSolver() *solver.Solver {
	return solver.New(noopLoop{}, nil, nil, nil)
}

func loadedRoster(tenantID string) *model.Roster {
	return &model.Roster{
		TenantID:  tenantID,
		Config:    model.DefaultConstraintConfiguration(tenantID),
		Employees: []*model.Employee{{ID: "e1"}, {ID: "e2"}},
		Shifts: []*model.Shift{{
			ID: "s1", SpotID: "p1",
			Start: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
		}},
	}
}

func TestSolveRoster_SubmitsLoadedRoster(t *testing.T) {
	store := &fakeRosterStore{roster: loadedRoster("tenant-a")}
	slv := newTestSolver()

	result, err := SolveRoster(context.Background(), store, slv, zap.NewNop(), "tenant-a", false)
	require.NoError(t, err)

	assert.Equal(t, "tenant-a", result.TenantID)
	assert.False(t, result.Replan)
	assert.Equal(t, 1, result.ShiftCount)
	assert.Equal(t, 2, result.EmployeeCount)
	require.NotNil(t, result.Handle)

	select {
	case <-result.Handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("run did not terminate")
	}
	assert.Equal(t, solver.StatusTerminated, ViewStatus(slv, "tenant-a"))
}

func TestSolveRoster_ReplanFlagsTheRoster(t *testing.T) {
	roster := loadedRoster("tenant-a")
	store := &fakeRosterStore{roster: roster}
	slv := newTestSolver()

	result, err := SolveRoster(context.Background(), store, slv, zap.NewNop(), "tenant-a", true)
	require.NoError(t, err)

	assert.True(t, result.Replan)
	assert.True(t, roster.NonDisruptive)
	<-result.Handle.Done()
}

func TestSolveRoster_StoreFailureIsWrapped(t *testing.T) {
	store := &fakeRosterStore{err: errors.New("connection refused")}

	_, err := SolveRoster(context.Background(), store, newTestSolver(), zap.NewNop(), "tenant-a", false)
	assert.ErrorContains(t, err, "failed to load roster for tenant tenant-a")
}

func TestTerminateSolve_WithoutActiveRun(t *testing.T) {
	err := TerminateSolve(newTestSolver(), zap.NewNop(), "tenant-a")
	assert.ErrorIs(t, err, solver.ErrNotSolving)
}

func TestViewStatus_DefaultsToTerminated(t *testing.T) {
	assert.Equal(t, solver.StatusTerminated, ViewStatus(newTestSolver(), "tenant-a"))
}
