package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/rosterops/rosterd/internal/config"
	"github.com/rosterops/rosterd/pkg/core/solver"
	"github.com/rosterops/rosterd/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Store  db.Store
	Solver *solver.Solver
	Logger *zap.Logger
	Ctx    context.Context
}
