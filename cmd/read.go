package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tablesink/internal/dataset"
)

var readLimit int

var readCmd = &cobra.Command{
	Use:   "read <source>",
	Short: "Print a table's contents as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		be, err := activeBackend()
		if err != nil {
			return err
		}

		ds, err := be.Source.Read(args[0])
		if err != nil {
			return err
		}
		if readLimit > 0 && ds.Rows() > readLimit {
			ds = headRows(ds, readLimit)
		}
		return dataset.WriteCSV(os.Stdout, ds)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tables in the active store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		be, err := activeBackend()
		if err != nil {
			return err
		}

		tables, err := be.Source.List()
		if err != nil {
			return err
		}
		for _, t := range tables {
			fmt.Println(t)
		}
		return nil
	},
}

func headRows(ds *dataset.Dataset, n int) *dataset.Dataset {
	out := dataset.New()
	for _, col := range ds.Columns() {
		values := col.Values
		if len(values) > n {
			values = values[:n]
		}
		out.AddColumn(col.Name, values)
	}
	return out
}

func init() {
	RootCmd.AddCommand(readCmd)
	RootCmd.AddCommand(listCmd)

	readCmd.Flags().IntVar(&readLimit, "limit", 0, "print at most this many rows")
}
