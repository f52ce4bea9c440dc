package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tablesink/internal/engine"
)

var seedRows int

var seedCmd = &cobra.Command{
	Use:   "seed <destination>",
	Short: "Generate a demo dataset and save it",
	Long: `Generates a listings-style demo dataset with deliberately messy values
(currency prefixes, locale separators, percent strings, yes/no flags) and
saves it, so a fresh deployment can be exercised end to end.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		be, err := activeBackend()
		if err != nil {
			return err
		}

		ds := engine.DemoDataset(seedRows)
		reports, err := be.Saver.Save(args[0], ds)
		if err != nil {
			return err
		}

		failures := 0
		for _, r := range reports {
			failures += r.Failures
		}
		fmt.Printf("Seeded %s with %d rows (%d coercion failures)\n", args[0], ds.Rows(), failures)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedRows, "rows", 100, "number of rows to generate")
}
