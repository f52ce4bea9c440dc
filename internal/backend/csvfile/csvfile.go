// Package csvfile persists datasets as CSV files on disk. Writes go through
// a temp file and rename, so a reader never sees a half-written table.
// Backups are copies under backups/<year>/, named with a timestamp and never
// overwritten.
package csvfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tablesink/internal/backup"
	"tablesink/internal/dataset"
	"tablesink/internal/engine"
	"tablesink/internal/schema"
	"tablesink/internal/store"
)

type Store struct {
	dir string
	log *slog.Logger
	now func() time.Time
}

func New(dir string, log *slog.Logger) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create csv store dir: %w", err)
	}
	return &Store{dir: dir, log: log, now: time.Now}, nil
}

func (s *Store) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

// Save writes the dataset to <dir>/<table>.csv, replacing any previous
// contents atomically. CSV carries no column types, so no coercion runs and
// no reports come back.
func (s *Store) Save(table string, ds *dataset.Dataset) ([]engine.Report, error) {
	tmp, err := os.CreateTemp(s.dir, table+".*.csv")
	if err != nil {
		return nil, fmt.Errorf("stage csv for %s: %w", table, err)
	}
	defer os.Remove(tmp.Name())

	if err := dataset.WriteCSV(tmp, ds); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write csv for %s: %w", table, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), s.path(table)); err != nil {
		return nil, fmt.Errorf("replace csv for %s: %w", table, err)
	}
	s.log.Info("dataset saved", "backend", "csv", "table", table, "rows", ds.Rows())
	return nil, nil
}

// SaveWithBackup copies the current file into the backup tree first; a
// missing current file just means there is nothing to keep.
func (s *Store) SaveWithBackup(table string, ds *dataset.Dataset) ([]engine.Report, error) {
	if _, err := os.Stat(s.path(table)); err == nil {
		if err := s.BackupOne(table); err != nil {
			s.log.Warn("pre-save backup failed, saving anyway", "table", table, "error", err)
		}
	}
	return s.Save(table, ds)
}

// Read loads <dir>/<table>.csv; a missing file is a not-found error.
func (s *Store) Read(table string) (*dataset.Dataset, error) {
	f, err := os.Open(s.path(table))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.NotFound(table)
		}
		return nil, err
	}
	defer f.Close()
	return dataset.ReadCSV(f)
}

// List names every stored table, sorted, backup copies excluded.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var tables []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		tables = append(tables, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(tables)
	return tables, nil
}

// BackupOne copies the table's file to
// backups/<year>/<table>_backup_<stamp>.csv. Existing snapshots are never
// touched.
func (s *Store) BackupOne(table string) error {
	src, err := os.ReadFile(s.path(table))
	if err != nil {
		if os.IsNotExist(err) {
			return store.NotFound(table)
		}
		return err
	}

	stamp := backup.NewStamp(s.now().UTC())
	dir := filepath.Join(s.dir, "backups", fmt.Sprintf("%d", stamp.Year))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("%s%s_%s.csv", table, schema.BackupSuffix, stamp.Time.Format("20060102_150405"))
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("backup %s already exists", name)
	}
	if err := os.WriteFile(dest, src, 0o644); err != nil {
		return fmt.Errorf("write backup for %s: %w", table, err)
	}
	s.log.Info("table backed up", "backend", "csv", "table", table, "file", dest)
	return nil
}

// BackupAll snapshots every stored table; failures are collected, not fatal.
func (s *Store) BackupAll(onProgress func(table string)) ([]string, []backup.TableError, error) {
	tables, err := s.List()
	if err != nil {
		return nil, nil, err
	}
	var done []string
	var failed []backup.TableError
	for _, t := range tables {
		if onProgress != nil {
			onProgress(t)
		}
		if err := s.BackupOne(t); err != nil {
			failed = append(failed, backup.TableError{Table: t, Err: err})
			continue
		}
		done = append(done, t)
	}
	return done, failed, nil
}

// HealthCheck verifies the store directory is writable.
func (s *Store) HealthCheck() error {
	f, err := os.CreateTemp(s.dir, ".health.*")
	if err != nil {
		return store.ConnectionErr(fmt.Errorf("csv store dir not writable: %w", err))
	}
	f.Close()
	return os.Remove(f.Name())
}
