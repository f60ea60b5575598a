package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterops/rosterd/internal/config"
	"github.com/rosterops/rosterd/pkg/db"
)

type fakeGenerateStore struct {
	spots    []db.Spot
	state    *db.RosterState
	stateErr error

	inserted []db.Shift
}

func (f *fakeGenerateStore) GetSpots(ctx context.Context, tenantID string) ([]db.Spot, error) {
	return f.spots, nil
}

func (f *fakeGenerateStore) GetRosterState(ctx context.Context, tenantID string) (*db.RosterState, error) {
	return f.state, f.stateErr
}

func (f *fakeGenerateStore) InsertShifts(ctx context.Context, shifts []db.Shift) error {
	f.inserted = shifts
	return nil
}

func generateConfig(templates ...config.ShiftTemplate) *config.Config {
	return &config.Config{
		DatabaseURL:    "postgres://localhost/test",
		Solver:         config.SolverConfig{MaxIterations: 1, MaxUnimproved: 1},
		ShiftTemplates: templates,
	}
}

func TestGenerateShifts_ExpandsWeeklyTemplateOverDraftWindow(t *testing.T) {
	store := &fakeGenerateStore{
		spots: []db.Spot{{ID: "spot-1", TenantID: "tenant-a", Name: "Front desk"}},
		state: &db.RosterState{
			TenantID:       "tenant-a",
			FirstDraftDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), // Monday
			RotationLength: 14,
		},
	}
	cfg := generateConfig(config.ShiftTemplate{
		RRule:            "FREQ=WEEKLY;BYDAY=MO,WE,FR",
		Spot:             "Front desk",
		StartTime:        "09:00",
		DurationMinutes:  480,
		RotationEmployee: "emp-1",
	})

	result, err := GenerateShifts(context.Background(), store, cfg, zap.NewNop(), "tenant-a")
	require.NoError(t, err)

	// Mon/Wed/Fri over two weeks plus the Monday closing the window
	assert.Equal(t, 7, result.ShiftCount)
	require.Len(t, store.inserted, 7)

	first := store.inserted[0]
	assert.Equal(t, "tenant-a", first.TenantID)
	assert.Equal(t, "spot-1", first.SpotID)
	assert.Equal(t, "emp-1", first.RotationEmployeeID)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), first.Start)
	assert.Equal(t, time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC), first.End)
}

func TestGenerateShifts_AnchorsClockTimeInTenantTimezone(t *testing.T) {
	store := &fakeGenerateStore{
		spots: []db.Spot{{ID: "spot-1", Name: "Bar"}},
		state: &db.RosterState{
			TenantID:       "tenant-a",
			FirstDraftDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			RotationLength: 1,
			Timezone:       "America/New_York",
		},
	}
	cfg := generateConfig(config.ShiftTemplate{
		RRule:           "FREQ=DAILY;COUNT=1",
		Spot:            "Bar",
		StartTime:       "18:30",
		DurationMinutes: 240,
	})

	_, err := GenerateShifts(context.Background(), store, cfg, zap.NewNop(), "tenant-a")
	require.NoError(t, err)
	require.Len(t, store.inserted, 1)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 18, 30, 0, 0, ny), store.inserted[0].Start)
}

func TestGenerateShifts_UnknownSpotFails(t *testing.T) {
	store := &fakeGenerateStore{
		spots: []db.Spot{{ID: "spot-1", Name: "Front desk"}},
		state: &db.RosterState{
			TenantID:       "tenant-a",
			FirstDraftDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			RotationLength: 7,
		},
	}
	cfg := generateConfig(config.ShiftTemplate{
		RRule:           "FREQ=DAILY",
		Spot:            "Kitchen",
		StartTime:       "09:00",
		DurationMinutes: 60,
	})

	_, err := GenerateShifts(context.Background(), store, cfg, zap.NewNop(), "tenant-a")
	assert.ErrorContains(t, err, `unknown spot "Kitchen"`)
}

func TestGenerateShifts_MissingRosterStateFails(t *testing.T) {
	store := &fakeGenerateStore{state: nil}
	_, err := GenerateShifts(context.Background(), store, generateConfig(), zap.NewNop(), "tenant-a")
	assert.ErrorContains(t, err, "no roster state")
}

func TestGenerateShifts_StoreErrorIsWrapped(t *testing.T) {
	store := &fakeGenerateStore{stateErr: errors.New("connection refused")}
	_, err := GenerateShifts(context.Background(), store, generateConfig(), zap.NewNop(), "tenant-a")
	assert.ErrorContains(t, err, "failed to load roster state")
}
