package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterops/rosterd/pkg/core/services"
	"github.com/rosterops/rosterd/pkg/core/solver"
)

// TerminateCmd creates the terminate command
func TerminateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terminate",
		Short: "Request cancellation of a tenant's active run",
		Long:  "Cancellation is cooperative: the search loop stops between iterations and the best solution found so far stands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, _ := cmd.Flags().GetString("tenant")

			app.Logger.Debug("terminate command", zap.String("tenant", tenantID))

			err := services.TerminateSolve(app.Solver, app.Logger, tenantID)
			if errors.Is(err, solver.ErrNotSolving) {
				return fmt.Errorf("tenant %s has no active solve", tenantID)
			}
			if err != nil {
				return fmt.Errorf("terminate failed: %w", err)
			}

			fmt.Printf("Termination requested for tenant %s\n", tenantID)
			return nil
		},
	}

	cmd.Flags().StringP("tenant", "t", "", "Tenant ID (required)")
	cmd.MarkFlagRequired("tenant")

	return cmd
}

// StatusCmd creates the status command
func StatusCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a tenant's current solve state",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, _ := cmd.Flags().GetString("tenant")

			status := services.ViewStatus(app.Solver, tenantID)
			fmt.Printf("Tenant %s: %s\n", tenantID, status)
			return nil
		},
	}

	cmd.Flags().StringP("tenant", "t", "", "Tenant ID (required)")
	cmd.MarkFlagRequired("tenant")

	return cmd
}
