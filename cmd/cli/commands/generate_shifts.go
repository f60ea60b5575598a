package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterops/rosterd/pkg/core/services"
)

// GenerateShiftsCmd creates the generateShifts command
func GenerateShiftsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateShifts",
		Short: "Generate shifts from the configured templates",
		Long:  "Expand the configured recurring shift templates over the tenant's draft window and insert the resulting shifts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, _ := cmd.Flags().GetString("tenant")

			app.Logger.Debug("generateShifts command", zap.String("tenant", tenantID))

			result, err := services.GenerateShifts(app.Ctx, app.Store, app.Cfg, app.Logger, tenantID)
			if err != nil {
				return fmt.Errorf("shift generation failed: %w", err)
			}

			fmt.Printf("\nShifts generated\n\n")
			fmt.Printf("Tenant:  %s\n", result.TenantID)
			fmt.Printf("Window:  %s to %s\n",
				result.WindowStart.Format("2006-01-02"), result.WindowEnd.Format("2006-01-02"))
			fmt.Printf("Shifts:  %d\n", result.ShiftCount)
			return nil
		},
	}

	cmd.Flags().StringP("tenant", "t", "", "Tenant ID (required)")
	cmd.MarkFlagRequired("tenant")

	return cmd
}

// ListEmployeesCmd creates the listEmployees command
func ListEmployeesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listEmployees",
		Short: "List a tenant's employees and their skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, _ := cmd.Flags().GetString("tenant")

			employees, err := app.Store.GetEmployees(app.Ctx, tenantID)
			if err != nil {
				return fmt.Errorf("failed to list employees: %w", err)
			}

			fmt.Printf("\n%d employees for tenant %s\n\n", len(employees), tenantID)
			for _, e := range employees {
				fmt.Printf("  %s  %s  skills=%v\n", e.ID, e.Name, e.Skills)
			}
			return nil
		},
	}

	cmd.Flags().StringP("tenant", "t", "", "Tenant ID (required)")
	cmd.MarkFlagRequired("tenant")

	return cmd
}
