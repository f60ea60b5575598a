package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterops/rosterd/pkg/core/services"
	"github.com/rosterops/rosterd/pkg/core/solver"
)

// SolveCmd creates the solve command
func SolveCmd(app *AppContext) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Start an optimization run for a tenant",
		Long:  "Load the tenant's roster and start a background optimization run. Improvements are published as they are found; observe progress with the status command.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, _ := cmd.Flags().GetString("tenant")

			app.Logger.Debug("solve command", zap.String("tenant", tenantID), zap.Bool("wait", wait))

			result, err := services.SolveRoster(app.Ctx, app.Store, app.Solver, app.Logger, tenantID, false)
			if errors.Is(err, solver.ErrAlreadySolving) {
				return fmt.Errorf("tenant %s already has an active solve; terminate it first", tenantID)
			}
			if err != nil {
				return fmt.Errorf("solve failed: %w", err)
			}

			fmt.Printf("\nSolve submitted\n\n")
			fmt.Printf("Tenant:    %s\n", result.TenantID)
			fmt.Printf("Shifts:    %d\n", result.ShiftCount)
			fmt.Printf("Employees: %d\n", result.EmployeeCount)
			fmt.Printf("Status:    %s\n", result.Status)

			if wait {
				fmt.Println("\nWaiting for the run to finish...")
				<-result.Handle.Done()
				if err := result.Handle.Err(); err != nil {
					return fmt.Errorf("run failed: %w", err)
				}
				fmt.Println("Run finished")
			}
			return nil
		},
	}

	cmd.Flags().StringP("tenant", "t", "", "Tenant ID (required)")
	cmd.MarkFlagRequired("tenant")
	cmd.Flags().BoolVar(&wait, "wait", false, "Block until the run finishes")

	return cmd
}
