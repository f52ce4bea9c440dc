package cmd

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
)

var backupAll bool

var backupCmd = &cobra.Command{
	Use:   "backup [table ...]",
	Short: "Append stamped snapshots of tables into their backup tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !backupAll && len(args) == 0 {
			return fmt.Errorf("name tables to back up or pass --all")
		}

		be, err := activeBackend()
		if err != nil {
			return err
		}
		if be.Backup == nil {
			return fmt.Errorf("backend %s keeps no backups", be.Kind)
		}

		if !backupAll {
			for _, t := range args {
				if err := be.Backup.BackupOne(t); err != nil {
					return err
				}
				fmt.Printf("[✓] %s\n", t)
			}
			return nil
		}

		tables, err := be.Source.List()
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			fmt.Println("Nothing to back up")
			return nil
		}

		uiprogress.Start()
		bar := uiprogress.AddBar(len(tables)).AppendCompleted().PrependElapsed()
		current := ""
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("Backing up: %-20s", current)
		})

		done, failed, err := be.Backup.BackupAll(func(table string) {
			current = table
			bar.Incr()
		})
		uiprogress.Stop()
		if err != nil {
			return err
		}

		fmt.Printf("\nBacked up %d tables\n", len(done))
		for _, f := range failed {
			fmt.Printf("[!] %-20s : %v\n", f.Table, f.Err)
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d tables failed", len(failed), len(done)+len(failed))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(backupCmd)

	backupCmd.Flags().BoolVar(&backupAll, "all", false, "back up every base table in the namespace")
}
