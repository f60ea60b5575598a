package db

import (
	"context"

	"github.com/rosterops/rosterd/pkg/core/model"
)

// RosterStore loads a tenant's full roster snapshot and receives improved
// rosters back from the solve orchestrator. Both calls must be safe from a
// background goroutine.
type RosterStore interface {
	LoadRoster(ctx context.Context, tenantID string) (*model.Roster, error)
	PublishImprovedRoster(ctx context.Context, r *model.Roster) error
}

// Store defines every database operation the application uses.
// postgres.DB implements this interface.
type Store interface {
	RosterStore

	GetEmployees(ctx context.Context, tenantID string) ([]Employee, error)
	GetSpots(ctx context.Context, tenantID string) ([]Spot, error)
	GetRosterState(ctx context.Context, tenantID string) (*RosterState, error)
	UpsertRosterState(ctx context.Context, state *RosterState) error
	InsertShifts(ctx context.Context, shifts []Shift) error
}
