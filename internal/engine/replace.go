package engine

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"tablesink/internal/dataset"
	"tablesink/internal/dialect"
)

// ShadowName builds the staging table name for a destination table. The
// UTC stamp keeps concurrent replaces of different tables from colliding.
func ShadowName(dest string) string {
	return fmt.Sprintf("shadow_%s_%s", dest, time.Now().UTC().Format("20060102_150405"))
}

// SwapPlan lists the DDL statements that atomically promote a loaded shadow
// table to the destination name. The retired destination is parked under an
// old_ prefix and dropped last, so a failure mid-sequence leaves the data
// recoverable.
func SwapPlan(d dialect.Dialect, namespace, dest, shadow string) []string {
	old := "old_" + shadow
	return []string{
		d.RenameTableSQL(namespace, dest, old),
		d.RenameTableSQL(namespace, shadow, dest),
		d.DropTableSQL(namespace, old),
	}
}

// Replace swaps the full contents of a table in one transaction: clone the
// destination's structure into a shadow table, bulk-load the dataset into
// it, then rename the shadow over the destination. Readers only ever see
// the complete old contents or the complete new contents. An empty dataset
// is a valid request and truncates the table.
func Replace(db *sql.DB, d dialect.Dialect, namespace, dest string, ds *dataset.Dataset, log *slog.Logger) error {
	shadow := ShadowName(dest)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace of %s: %w", dest, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(d.CloneTableSQL(namespace, shadow, dest)); err != nil {
		return fmt.Errorf("clone %s into shadow: %w", dest, err)
	}

	if ds.Rows() > 0 {
		if err := bulkInsert(tx, d, namespace, shadow, ds); err != nil {
			return fmt.Errorf("load shadow for %s: %w", dest, err)
		}
	}

	for _, stmt := range SwapPlan(d, namespace, dest, shadow) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("swap shadow over %s: %w", dest, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace of %s: %w", dest, err)
	}
	log.Debug("table replaced", "table", dest, "rows", ds.Rows())
	return nil
}

func bulkInsert(tx *sql.Tx, d dialect.Dialect, namespace, table string, ds *dataset.Dataset) error {
	cols := ds.Names()
	stmt, err := tx.Prepare(d.InsertSQL(namespace, table, cols))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	rows := ds.Rows()
	for i := 0; i < rows; i++ {
		row := ds.Row(i)
		args := make([]any, len(row))
		for j, v := range row {
			bound, err := bindValue(v)
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", i, cols[j], err)
			}
			args[j] = bound
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return nil
}

// bindValue converts structured JSON values to their text form; drivers
// only accept flat scalar types.
func bindValue(v any) (any, error) {
	switch v.(type) {
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode json value: %w", err)
		}
		return string(raw), nil
	default:
		return v, nil
	}
}
