package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tablesink/internal/dataset"
)

var withBackup bool

var saveCmd = &cobra.Command{
	Use:   "save <csv-file> <destination>",
	Short: "Load a CSV dataset into a table, replacing its contents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, dest := args[0], args[1]

		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close()

		ds, err := dataset.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		be, err := activeBackend()
		if err != nil {
			return err
		}

		start := time.Now()
		save := be.Saver.Save
		if withBackup {
			save = be.Saver.SaveWithBackup
		}
		reports, err := save(dest, ds)
		if err != nil {
			return err
		}

		failures := 0
		for _, r := range reports {
			failures += r.Failures
			if r.Failures > 0 {
				fmt.Printf("  ! %-20s : %d values could not be coerced (rows %v)\n",
					r.Column, r.Failures, r.Sample)
			}
		}
		fmt.Printf("Saved %d rows into %s (%d coercion failures) in %s\n",
			ds.Rows(), dest, failures, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(saveCmd)

	saveCmd.Flags().BoolVar(&withBackup, "backup", false, "snapshot the current contents before replacing them")
}
