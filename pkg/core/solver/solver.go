// Package solver owns the lifecycle of per-tenant optimization runs: one
// active run per tenant, atomic state transitions, cooperative termination
// and publication of every improvement.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rosterops/rosterd/pkg/core/model"
	"github.com/rosterops/rosterd/pkg/core/scorer"
	"github.com/rosterops/rosterd/pkg/core/search"
)

// Status is a tenant's solve lifecycle state
type Status string

const (
	// StatusTerminated means no run is active; the only state Solve accepts
	StatusTerminated Status = "TERMINATED"

	// StatusScheduled means a run is accepted but has not started yet
	StatusScheduled Status = "SCHEDULED"

	// StatusSolving means the run's search loop is executing
	StatusSolving Status = "SOLVING"
)

var (
	// ErrAlreadySolving is returned when a solve is requested for a tenant
	// whose previous run has not terminated. A user error, not a fault.
	ErrAlreadySolving = errors.New("tenant already has an active solve")

	// ErrNotSolving is returned when termination is requested for a tenant
	// with no active run. A user error, not a fault.
	ErrNotSolving = errors.New("tenant has no active solve")
)

// Publisher receives every improved roster the search loop accepts. Called
// from the run's goroutine; failures are logged and never fail the run.
type Publisher interface {
	PublishImprovedRoster(ctx context.Context, r *model.Roster) error
}

// Handle observes one submitted run
type Handle struct {
	done chan struct{}
	err  error
}

// Done is closed when the run has terminated
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err reports the run's failure, if any. Only valid after Done is closed.
func (h *Handle) Err() error { return h.err }

type run struct {
	status Status
	cancel context.CancelFunc
	handle *Handle
}

// Solver orchestrates per-tenant runs over an injected search loop. The
// tenant registry is owned by the instance, not the process, so independent
// Solvers can coexist.
type Solver struct {
	mu      sync.Mutex
	tenants map[string]*run

	loop      search.Loop
	scorer    *scorer.Scorer
	publisher Publisher
	logger    *zap.Logger
}

// New creates a Solver. The publisher may be nil when improvements only
// need to be observed through Status polling (e.g. in tests).
func New(loop search.Loop, sc *scorer.Scorer, publisher Publisher, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{
		tenants:   make(map[string]*run),
		loop:      loop,
		scorer:    sc,
		publisher: publisher,
		logger:    logger,
	}
}

// Status returns the tenant's current state. Unknown tenants are TERMINATED.
func (s *Solver) Status(tenantID string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.tenants[tenantID]; ok {
		return r.status
	}
	return StatusTerminated
}

// Solve submits a roster for optimization. Fails with ErrAlreadySolving
// unless the tenant's current state is TERMINATED. The returned handle
// completes when the run ends; the run's outcome is observed via Status
// polling and the publisher, never synchronously.
func (s *Solver) Solve(tenantID string, roster *model.Roster) (*Handle, error) {
	return s.submit(tenantID, roster)
}

// Replan submits a roster for non-disruptive re-optimization: the roster is
// flagged so the search loop minimizes changes to assigned shifts, and
// every non-pinned shift currently violating the unavailable-time-slot rule
// has its employee cleared first, seeding the search from an
// availability-feasible starting point.
func (s *Solver) Replan(tenantID string, roster *model.Roster) (*Handle, error) {
	roster.NonDisruptive = true
	cleared := 0
	for _, shift := range scorer.UnavailableViolations(roster) {
		if !shift.Pinned {
			shift.EmployeeID = ""
			cleared++
		}
	}
	if cleared > 0 {
		s.logger.Info("replan cleared unavailable assignments",
			zap.String("tenant", tenantID),
			zap.Int("shifts_cleared", cleared))
	}
	return s.submit(tenantID, roster)
}

func (s *Solver) submit(tenantID string, roster *model.Roster) (*Handle, error) {
	ctx, cancel := context.WithCancel(context.Background())
	handle := &Handle{done: make(chan struct{})}

	s.mu.Lock()
	if existing, ok := s.tenants[tenantID]; ok && existing.status != StatusTerminated {
		s.mu.Unlock()
		cancel()
		return nil, fmt.Errorf("tenant %s: %w", tenantID, ErrAlreadySolving)
	}
	active := &run{status: StatusScheduled, cancel: cancel, handle: handle}
	s.tenants[tenantID] = active
	s.mu.Unlock()

	s.logger.Info("solve scheduled", zap.String("tenant", tenantID),
		zap.Int("shifts", len(roster.Shifts)),
		zap.Bool("non_disruptive", roster.NonDisruptive))

	go s.execute(ctx, tenantID, active, roster)
	return handle, nil
}

// execute is the run goroutine. Cleanup always transitions the tenant back
// to TERMINATED and removes the handle inside one critical section, so a
// subsequent Solve never races with the teardown of this run.
func (s *Solver) execute(ctx context.Context, tenantID string, active *run, roster *model.Roster) {
	defer func() {
		if recovered := recover(); recovered != nil {
			active.handle.err = fmt.Errorf("solve run panicked: %v", recovered)
			s.logger.Error("solve run panicked",
				zap.String("tenant", tenantID),
				zap.Any("panic", recovered))
		}
		s.mu.Lock()
		active.status = StatusTerminated
		delete(s.tenants, tenantID)
		s.mu.Unlock()
		active.cancel()
		close(active.handle.done)
	}()

	s.mu.Lock()
	active.status = StatusSolving
	s.mu.Unlock()

	err := s.loop.Run(ctx, roster, s.scorer, func(improved *model.Roster, score scorer.Score) {
		s.publish(ctx, tenantID, improved, score)
	})
	if err != nil {
		active.handle.err = err
		s.logger.Error("solve run failed",
			zap.String("tenant", tenantID),
			zap.Error(err))
	}
}

// publish pushes an improvement to the persistence collaborator. Errors are
// logged and swallowed: publication latency or failure never stalls or
// fails the run.
func (s *Solver) publish(ctx context.Context, tenantID string, improved *model.Roster, score scorer.Score) {
	s.logger.Debug("improved solution found",
		zap.String("tenant", tenantID),
		zap.String("score", score.String()))
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishImprovedRoster(ctx, improved); err != nil {
		s.logger.Warn("failed to publish improved roster",
			zap.String("tenant", tenantID),
			zap.Error(err))
	}
}

// Terminate requests cooperative cancellation of the tenant's active run.
// The search loop notices between iterations and keeps its best solution.
func (s *Solver) Terminate(tenantID string) error {
	s.mu.Lock()
	active, ok := s.tenants[tenantID]
	if !ok || active.status == StatusTerminated {
		s.mu.Unlock()
		return fmt.Errorf("tenant %s: %w", tenantID, ErrNotSolving)
	}
	cancel := active.cancel
	s.mu.Unlock()

	s.logger.Info("termination requested", zap.String("tenant", tenantID))
	cancel()
	return nil
}
