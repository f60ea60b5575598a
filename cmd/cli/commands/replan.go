package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterops/rosterd/pkg/core/services"
	"github.com/rosterops/rosterd/pkg/core/solver"
)

// ReplanCmd creates the replan command
func ReplanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replan",
		Short: "Start a non-disruptive re-optimization for a tenant",
		Long:  "Like solve, but keeps existing assignments where possible and clears assignments that conflict with employee unavailability before the search starts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, _ := cmd.Flags().GetString("tenant")

			app.Logger.Debug("replan command", zap.String("tenant", tenantID))

			result, err := services.SolveRoster(app.Ctx, app.Store, app.Solver, app.Logger, tenantID, true)
			if errors.Is(err, solver.ErrAlreadySolving) {
				return fmt.Errorf("tenant %s already has an active solve; terminate it first", tenantID)
			}
			if err != nil {
				return fmt.Errorf("replan failed: %w", err)
			}

			fmt.Printf("\nReplan submitted\n\n")
			fmt.Printf("Tenant:    %s\n", result.TenantID)
			fmt.Printf("Shifts:    %d\n", result.ShiftCount)
			fmt.Printf("Employees: %d\n", result.EmployeeCount)
			fmt.Printf("Status:    %s\n", result.Status)
			return nil
		},
	}

	cmd.Flags().StringP("tenant", "t", "", "Tenant ID (required)")
	cmd.MarkFlagRequired("tenant")

	return cmd
}
