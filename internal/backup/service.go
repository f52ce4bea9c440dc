// Package backup appends point-in-time snapshots of tables into versioned
// companion tables. History only ever grows; restores are plain SQL against
// the stamp columns.
package backup

import (
	"fmt"
	"log/slog"
	"time"

	"tablesink/internal/dialect"
	"tablesink/internal/schema"
	"tablesink/internal/store"
)

// Service snapshots tables within one namespace.
type Service struct {
	client  *store.Client
	dialect dialect.Dialect
	ns      string
	log     *slog.Logger
	now     func() time.Time
}

func New(client *store.Client, d dialect.Dialect, namespace string, log *slog.Logger) *Service {
	return &Service{
		client:  client,
		dialect: d,
		ns:      namespace,
		log:     log,
		now:     time.Now,
	}
}

// Stamp identifies one snapshot batch.
type Stamp struct {
	Time time.Time
	Year int
	Week int
}

// NewStamp derives the version columns from a wall-clock instant: the
// calendar year and the ISO 8601 week number.
func NewStamp(t time.Time) Stamp {
	_, week := t.ISOWeek()
	return Stamp{Time: t, Year: t.Year(), Week: week}
}

// BackupName returns the companion table name for a source table.
func BackupName(table string) string {
	return table + schema.BackupSuffix
}

// TableError pairs a table with the failure it hit during a batch backup.
type TableError struct {
	Table string
	Err   error
}

func (e TableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Table, e.Err)
}

// BackupOne snapshots a single table. The companion table and its stamp
// indexes are created on first use; every later call appends. A missing
// source table is an error.
func (s *Service) BackupOne(table string) error {
	db, err := s.client.DB()
	if err != nil {
		return err
	}

	exists, err := schema.TableExists(db, s.dialect, s.ns, table)
	if err != nil {
		return err
	}
	if !exists {
		return store.NotFound(table)
	}

	backup := BackupName(table)
	backupExists, err := schema.TableExists(db, s.dialect, s.ns, backup)
	if err != nil {
		return err
	}

	stamp := NewStamp(s.now().UTC())

	tx, err := db.Begin()
	if err != nil {
		return store.TransactionErr(table, err)
	}
	defer tx.Rollback()

	if !backupExists {
		if _, err := tx.Exec(s.dialect.CreateBackupTableSQL(s.ns, backup, table)); err != nil {
			return store.TransactionErr(table, fmt.Errorf("create backup table: %w", err))
		}
		for _, stmt := range s.dialect.BackupIndexSQL(s.ns, backup) {
			if _, err := tx.Exec(stmt); err != nil {
				return store.TransactionErr(table, fmt.Errorf("create backup index: %w", err))
			}
		}
	}

	res, err := tx.Exec(s.dialect.BackupInsertSQL(s.ns, backup, table),
		stamp.Time, stamp.Year, stamp.Week)
	if err != nil {
		return store.TransactionErr(table, fmt.Errorf("append snapshot: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return store.TransactionErr(table, err)
	}

	rows, _ := res.RowsAffected()
	s.log.Info("table backed up",
		"table", table,
		"backup", backup,
		"rows", rows,
		"year", stamp.Year,
		"week", stamp.Week)
	return nil
}

// BackupAll snapshots every base table in the namespace, skipping the
// backup tables themselves. Each table runs in its own transaction, so one
// failure never blocks the rest; all failures come back together.
func (s *Service) BackupAll(onProgress func(table string)) ([]string, []TableError, error) {
	db, err := s.client.DB()
	if err != nil {
		return nil, nil, err
	}

	tables, err := schema.ListBaseTables(db, s.dialect, s.ns)
	if err != nil {
		return nil, nil, err
	}
	tables = schema.FilterBackupTables(tables)

	var done []string
	var failed []TableError
	for _, t := range tables {
		if onProgress != nil {
			onProgress(t)
		}
		if err := s.BackupOne(t); err != nil {
			s.log.Error("backup failed", "table", t, "error", err)
			failed = append(failed, TableError{Table: t, Err: err})
			continue
		}
		done = append(done, t)
	}
	return done, failed, nil
}
