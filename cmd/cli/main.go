package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterops/rosterd/cmd/cli/commands"
	"github.com/rosterops/rosterd/internal/config"
	"github.com/rosterops/rosterd/pkg/core/scorer"
	"github.com/rosterops/rosterd/pkg/core/search"
	"github.com/rosterops/rosterd/pkg/core/solver"
	"github.com/rosterops/rosterd/pkg/postgres"
	"github.com/rosterops/rosterd/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "rosterd CLI - Optimize employee shift rosters",
		Long:  `A CLI tool for running, replanning and monitoring per-tenant shift roster optimizations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.SolveCmd(appRef()))
	rootCmd.AddCommand(commands.ReplanCmd(appRef()))
	rootCmd.AddCommand(commands.TerminateCmd(appRef()))
	rootCmd.AddCommand(commands.StatusCmd(appRef()))
	rootCmd.AddCommand(commands.GenerateShiftsCmd(appRef()))
	rootCmd.AddCommand(commands.ListEmployeesCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared context; commands resolve fields lazily at
// RunE time, after PersistentPreRunE has populated it
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, database and the solve orchestrator
func initApp() error {
	appRef()
	app.Ctx = context.Background()

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Store = database

	loop := search.NewLocalSearch(
		app.Cfg.Solver.MaxIterations,
		app.Cfg.Solver.MaxUnimproved,
		app.Cfg.Solver.Seed,
		app.Logger,
	)
	app.Solver = solver.New(loop, scorer.NewDefaultScorer(), database, app.Logger)

	return nil
}
