// Package search provides the metaheuristic loop the orchestrator submits
// rosters to. The orchestrator only depends on the Loop interface, so any
// engine that accepts a roster, a scorer and an improvement callback can be
// swapped in.
package search

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/rosterops/rosterd/pkg/core/balance"
	"github.com/rosterops/rosterd/pkg/core/model"
	"github.com/rosterops/rosterd/pkg/core/scorer"
)

// Loop runs an optimization over a roster. Run blocks until the search
// finishes or ctx is cancelled; cancellation is cooperative, checked
// between iterations, and the loop keeps its best solution found so far.
// improved receives a fully processed snapshot of each strictly better
// roster, never the working copy.
type Loop interface {
	Run(ctx context.Context, r *model.Roster, sc *scorer.Scorer, improved func(*model.Roster, scorer.Score)) error
}

// LocalSearch is a strict-improvement local search over single-shift
// reassignment moves. A move picks a non-pinned shift and sets or clears
// its employee; moves that do not improve the score are undone. Hard score
// dominates medium dominates soft via scorer.Score ordering.
type LocalSearch struct {
	// MaxIterations bounds the total number of trial moves
	MaxIterations int

	// MaxUnimproved stops the search after this many consecutive
	// non-improving moves
	MaxUnimproved int

	// Seed makes runs reproducible; 0 seeds from the default source
	Seed int64

	Logger *zap.Logger
}

// NewLocalSearch returns a LocalSearch with the given bounds
func NewLocalSearch(maxIterations, maxUnimproved int, seed int64, logger *zap.Logger) *LocalSearch {
	return &LocalSearch{
		MaxIterations: maxIterations,
		MaxUnimproved: maxUnimproved,
		Seed:          seed,
		Logger:        logger,
	}
}

// Run performs the local search. The working roster is mutated in place;
// callers own it exclusively for the duration of the run.
func (ls *LocalSearch) Run(ctx context.Context, r *model.Roster, sc *scorer.Scorer, improved func(*model.Roster, scorer.Score)) error {
	rng := rand.New(rand.NewSource(ls.Seed))
	logger := ls.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if r.HourLoad() == nil {
		r.AttachHourLoad(balance.NewHourLoad())
	}

	movable := movableShifts(r)
	if len(movable) == 0 || len(r.Employees) == 0 {
		logger.Info("nothing to optimize",
			zap.String("tenant", r.TenantID),
			zap.Int("movable_shifts", len(movable)),
			zap.Int("employees", len(r.Employees)))
		return nil
	}

	best, err := sc.Score(r)
	if err != nil {
		return err
	}
	logger.Info("search starting",
		zap.String("tenant", r.TenantID),
		zap.String("score", best.String()),
		zap.Int("movable_shifts", len(movable)))

	unimproved := 0
	for iteration := 0; iteration < ls.MaxIterations; iteration++ {
		if ctx.Err() != nil {
			logger.Info("search cancelled, keeping best solution",
				zap.String("tenant", r.TenantID),
				zap.Int("iterations", iteration),
				zap.String("score", best.String()))
			return nil
		}
		if unimproved >= ls.MaxUnimproved {
			break
		}

		shift := ls.pickShift(rng, r, movable)
		previous := shift.EmployeeID
		next := ls.pickAssignee(rng, r, previous)
		if next == previous {
			unimproved++
			continue
		}

		applyMove(r, shift, next)
		candidate, err := sc.Score(r)
		if err != nil {
			return err
		}

		if candidate.Better(best) {
			best = candidate
			unimproved = 0
			improved(r.Clone(), best)
		} else {
			applyMove(r, shift, previous)
			unimproved++
		}
	}

	logger.Info("search finished",
		zap.String("tenant", r.TenantID),
		zap.String("score", best.String()))
	return nil
}

// pickShift selects a move target. Non-disruptive runs strongly favor
// unassigned shifts so an existing plan is only touched when nothing else
// improves the score.
func (ls *LocalSearch) pickShift(rng *rand.Rand, r *model.Roster, movable []*model.Shift) *model.Shift {
	if r.NonDisruptive && rng.Intn(10) < 9 {
		var unassigned []*model.Shift
		for _, s := range movable {
			if !s.Assigned() {
				unassigned = append(unassigned, s)
			}
		}
		if len(unassigned) > 0 {
			return unassigned[rng.Intn(len(unassigned))]
		}
	}
	return movable[rng.Intn(len(movable))]
}

// pickAssignee selects a new employee for the shift, occasionally clearing
// the assignment so the search can back out of dead ends
func (ls *LocalSearch) pickAssignee(rng *rand.Rand, r *model.Roster, current string) string {
	if current != "" && rng.Intn(20) == 0 {
		return ""
	}
	return r.Employees[rng.Intn(len(r.Employees))].ID
}

// applyMove sets the shift's employee and keeps the hour-load aggregator in
// step. Only assign/unassign transitions change bucket occupancy; swapping
// one employee for another leaves the buckets untouched.
func applyMove(r *model.Roster, shift *model.Shift, employeeID string) {
	wasAssigned := shift.Assigned()
	shift.EmployeeID = employeeID
	nowAssigned := shift.Assigned()

	tracker := r.HourLoad()
	if tracker == nil || wasAssigned == nowAssigned {
		return
	}
	if nowAssigned {
		tracker.Increase(shift.Start, shift.LengthMinutes())
	} else {
		tracker.Decrease(shift.Start, shift.LengthMinutes())
	}
}

func movableShifts(r *model.Roster) []*model.Shift {
	var movable []*model.Shift
	for _, s := range r.Shifts {
		if !s.Pinned {
			movable = append(movable, s)
		}
	}
	return movable
}
