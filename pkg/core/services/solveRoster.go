package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rosterops/rosterd/pkg/core/model"
	"github.com/rosterops/rosterd/pkg/core/solver"
)

// SolveRosterStore defines the database operations needed to start a solve
type SolveRosterStore interface {
	LoadRoster(ctx context.Context, tenantID string) (*model.Roster, error)
}

// SolveRosterResult contains the submission outcome. The optimization
// itself runs in the background; completion is observed via status polling.
type SolveRosterResult struct {
	TenantID      string
	Replan        bool
	ShiftCount    int
	EmployeeCount int
	Status        solver.Status
	Handle        *solver.Handle
}

// SolveRoster loads the tenant's roster snapshot and submits it for
// optimization. With replan set, the solve is non-disruptive and starts
// from an availability-feasible assignment.
func SolveRoster(
	ctx context.Context,
	store SolveRosterStore,
	slv *solver.Solver,
	logger *zap.Logger,
	tenantID string,
	replan bool,
) (*SolveRosterResult, error) {
	roster, err := store.LoadRoster(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for tenant %s: %w", tenantID, err)
	}

	logger.Info("submitting roster",
		zap.String("tenant", tenantID),
		zap.Bool("replan", replan),
		zap.Int("shifts", len(roster.Shifts)),
		zap.Int("employees", len(roster.Employees)))

	var handle *solver.Handle
	if replan {
		handle, err = slv.Replan(tenantID, roster)
	} else {
		handle, err = slv.Solve(tenantID, roster)
	}
	if err != nil {
		return nil, err
	}

	return &SolveRosterResult{
		TenantID:      tenantID,
		Replan:        replan,
		ShiftCount:    len(roster.Shifts),
		EmployeeCount: len(roster.Employees),
		Status:        slv.Status(tenantID),
		Handle:        handle,
	}, nil
}

// TerminateSolve requests cooperative cancellation of the tenant's active run
func TerminateSolve(slv *solver.Solver, logger *zap.Logger, tenantID string) error {
	if err := slv.Terminate(tenantID); err != nil {
		return err
	}
	logger.Info("terminate requested", zap.String("tenant", tenantID))
	return nil
}

// ViewStatus returns the tenant's current solve state
func ViewStatus(slv *solver.Solver, tenantID string) solver.Status {
	return slv.Status(tenantID)
}
