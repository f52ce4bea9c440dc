package schema

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"tablesink/internal/dataset"
	"tablesink/internal/dialect"
)

// InferSpecs derives one column definition per dataset column, in dataset
// order, using the dialect's storage type names. No column is ever inferred
// as NOT NULL.
func InferSpecs(ds *dataset.Dataset, d dialect.Dialect) []dialect.ColumnSpec {
	cols := ds.Columns()
	specs := make([]dialect.ColumnSpec, len(cols))
	for i, c := range cols {
		specs[i] = dialect.ColumnSpec{
			Name:    c.Name,
			SQLType: d.TypeName(dataset.InferKind(c.Values)),
		}
	}
	return specs
}

// MissingColumns returns the dataset columns absent from the reflected
// schema, in dataset order. Matching is case-insensitive because stores fold
// identifier case differently.
func MissingColumns(ds *dataset.Dataset, existing []Column) []dataset.Column {
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[strings.ToLower(c.Name)] = true
	}
	var missing []dataset.Column
	for _, c := range ds.Columns() {
		if !have[strings.ToLower(c.Name)] {
			missing = append(missing, c)
		}
	}
	return missing
}

// EnsureTable creates the destination if it does not exist, with one column
// per dataset column and types inferred from the values. Invoking it again
// for an existing destination is a no-op. Runs in its own commit boundary.
func EnsureTable(db *sql.DB, d dialect.Dialect, namespace, table string, ds *dataset.Dataset, log *slog.Logger) error {
	exists, err := TableExists(db, d, namespace, table)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	specs := InferSpecs(ds, d)
	if len(specs) == 0 {
		return fmt.Errorf("cannot create %s.%s from a dataset with no columns", namespace, table)
	}
	if _, err := db.Exec(d.CreateTableSQL(namespace, table, specs)); err != nil {
		return fmt.Errorf("failed to create table %s.%s: %w", namespace, table, err)
	}
	log.Debug("created table", "table", table, "columns", len(specs))
	return nil
}

// EnsureColumns adds every dataset column missing from the destination with
// an inferred type. Pre-existing columns are left untouched even when the
// dataset's inferred type differs; mismatches are tolerated by the coercion
// engine at write time, not resolved here. Runs in its own commit boundary.
func EnsureColumns(db *sql.DB, d dialect.Dialect, namespace, table string, ds *dataset.Dataset, log *slog.Logger) error {
	existing, err := Reflect(db, d, namespace, table)
	if err != nil {
		return err
	}
	for _, c := range MissingColumns(ds, existing) {
		sqlType := d.TypeName(dataset.InferKind(c.Values))
		if _, err := db.Exec(d.AddColumnSQL(namespace, table, c.Name, sqlType)); err != nil {
			return fmt.Errorf("failed to add column %s to %s.%s: %w", c.Name, namespace, table, err)
		}
		log.Debug("added column", "table", table, "column", c.Name, "type", sqlType)
	}
	return nil
}
