package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the active backend is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		be, err := activeBackend()
		if err != nil {
			return err
		}
		if err := be.Saver.HealthCheck(); err != nil {
			return fmt.Errorf("backend %s unhealthy: %w", be.Kind, err)
		}
		fmt.Printf("[✓] backend %s healthy\n", be.Kind)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
}
