// Package saver is the high-level entry point for writing datasets into a
// relational store: it lines up schema sync, type coercion and the atomic
// table swap behind one call.
package saver

import (
	"log/slog"
	"strings"

	"tablesink/internal/backup"
	"tablesink/internal/dataset"
	"tablesink/internal/dialect"
	"tablesink/internal/engine"
	"tablesink/internal/schema"
	"tablesink/internal/store"
)

type Saver struct {
	client  *store.Client
	dialect dialect.Dialect
	ns      string
	log     *slog.Logger
}

func New(client *store.Client, d dialect.Dialect, namespace string, log *slog.Logger) *Saver {
	return &Saver{client: client, dialect: d, ns: namespace, log: log}
}

// Save replaces the full contents of a table with the dataset. The table
// and any missing columns are created first; values are coerced to the
// table's declared types, with failures stored as nulls and reported back.
func (s *Saver) Save(table string, ds *dataset.Dataset) ([]engine.Report, error) {
	db, err := s.client.DB()
	if err != nil {
		return nil, err
	}

	if stmt := s.dialect.CreateSchemaSQL(s.ns); stmt != "" {
		if _, err := db.Exec(stmt); err != nil {
			return nil, store.SchemaConflict(table, err)
		}
	}
	if err := schema.EnsureTable(db, s.dialect, s.ns, table, ds, s.log); err != nil {
		return nil, store.SchemaConflict(table, err)
	}
	if err := schema.EnsureColumns(db, s.dialect, s.ns, table, ds, s.log); err != nil {
		return nil, store.SchemaConflict(table, err)
	}

	cols, err := schema.Reflect(db, s.dialect, s.ns, table)
	if err != nil {
		return nil, err
	}

	coerced, reports := engine.Coerce(ds, cols, s.log)
	if err := engine.Replace(db, s.dialect, s.ns, table, coerced, s.log); err != nil {
		return reports, store.TransactionErr(table, err)
	}
	s.log.Info("dataset saved", "table", table, "rows", coerced.Rows(), "columns", len(coerced.Names()))
	return reports, nil
}

// SaveWithBackup snapshots the current contents before replacing them. The
// snapshot is best effort: a brand-new table has nothing to keep, and a
// failed snapshot is logged but never blocks the save.
func (s *Saver) SaveWithBackup(table string, ds *dataset.Dataset) ([]engine.Report, error) {
	db, err := s.client.DB()
	if err != nil {
		return nil, err
	}

	exists, err := schema.TableExists(db, s.dialect, s.ns, table)
	if err != nil {
		return nil, err
	}
	if exists {
		svc := backup.New(s.client, s.dialect, s.ns, s.log)
		if err := svc.BackupOne(table); err != nil {
			s.log.Warn("pre-save backup failed, saving anyway", "table", table, "error", err)
		}
	}
	return s.Save(table, ds)
}

// Read loads the full contents of a table, preserving column order.
func (s *Saver) Read(table string) (*dataset.Dataset, error) {
	db, err := s.client.DB()
	if err != nil {
		return nil, err
	}

	exists, err := schema.TableExists(db, s.dialect, s.ns, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.NotFound(table)
	}

	cols, err := schema.Reflect(db, s.dialect, s.ns, table)
	if err != nil {
		return nil, err
	}
	binary := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c.Class == dialect.ClassBinary {
			binary[strings.ToLower(c.Name)] = true
		}
	}

	rows, err := db.Query(s.dialect.SelectAllSQL(s.ns, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([][]any, len(names))
	for rows.Next() {
		scan := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range scan {
			ptrs[i] = &scan[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range scan {
			values[i] = append(values[i], scanValue(v, binary[strings.ToLower(names[i])]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ds := dataset.New()
	for i, name := range names {
		if err := ds.AddColumn(name, values[i]); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// scanValue normalizes one scanned cell. Drivers hand text columns back as
// []byte, which reads as a string; genuinely binary columns keep their raw
// bytes.
func scanValue(v any, binary bool) any {
	if b, ok := v.([]byte); ok && !binary {
		return string(b)
	}
	return v
}

// List returns the base tables of the namespace, backup tables excluded.
func (s *Saver) List() ([]string, error) {
	db, err := s.client.DB()
	if err != nil {
		return nil, err
	}
	tables, err := schema.ListBaseTables(db, s.dialect, s.ns)
	if err != nil {
		return nil, err
	}
	return schema.FilterBackupTables(tables), nil
}

// HealthCheck verifies the store answers a trivial query.
func (s *Saver) HealthCheck() error {
	db, err := s.client.DB()
	if err != nil {
		return err
	}
	var one int
	if err := db.QueryRow(s.dialect.HealthQuery()).Scan(&one); err != nil {
		return store.ConnectionErr(err)
	}
	return nil
}
