// Package tempfile is a scratch backend for local runs: datasets land as
// .csv or .json files in a throwaway directory. It keeps no history, so
// backup requests degrade to a plain save with a warning.
package tempfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"tablesink/internal/dataset"
	"tablesink/internal/engine"
	"tablesink/internal/store"
)

type Store struct {
	dir string
	log *slog.Logger
}

func New(dir string, log *slog.Logger) (*Store, error) {
	if dir == "" {
		d, err := os.MkdirTemp("", "tablesink-*")
		if err != nil {
			return nil, fmt.Errorf("create temp store dir: %w", err)
		}
		dir = d
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp store dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns where scratch files land.
func (s *Store) Dir() string { return s.dir }

// Save writes the dataset as CSV, or as JSON when the table name carries a
// .json suffix.
func (s *Store) Save(table string, ds *dataset.Dataset) ([]engine.Report, error) {
	if strings.HasSuffix(table, ".json") {
		return nil, s.saveJSON(table, ds)
	}
	return nil, s.saveCSV(table, ds)
}

// SaveWithBackup warns and saves; scratch files have no history to keep.
func (s *Store) SaveWithBackup(table string, ds *dataset.Dataset) ([]engine.Report, error) {
	s.log.Warn("temp backend keeps no backups, saving without one", "table", table)
	return s.Save(table, ds)
}

func (s *Store) saveCSV(table string, ds *dataset.Dataset) error {
	f, err := os.Create(filepath.Join(s.dir, ensureExt(table, ".csv")))
	if err != nil {
		return fmt.Errorf("create scratch csv for %s: %w", table, err)
	}
	defer f.Close()
	if err := dataset.WriteCSV(f, ds); err != nil {
		return fmt.Errorf("write scratch csv for %s: %w", table, err)
	}
	return nil
}

func (s *Store) saveJSON(table string, ds *dataset.Dataset) error {
	rows := make([]map[string]any, ds.Rows())
	names := ds.Names()
	for i := range rows {
		row := make(map[string]any, len(names))
		for j, v := range ds.Row(i) {
			row[names[j]] = v
		}
		rows[i] = row
	}
	raw, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scratch json for %s: %w", table, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, table), raw, 0o644); err != nil {
		return fmt.Errorf("write scratch json for %s: %w", table, err)
	}
	return nil
}

// Read loads a scratch CSV back; JSON scratch files are write-only.
func (s *Store) Read(table string) (*dataset.Dataset, error) {
	f, err := os.Open(filepath.Join(s.dir, ensureExt(table, ".csv")))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.NotFound(table)
		}
		return nil, err
	}
	defer f.Close()
	return dataset.ReadCSV(f)
}

func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var tables []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".csv") {
			tables = append(tables, strings.TrimSuffix(e.Name(), ".csv"))
		}
	}
	sort.Strings(tables)
	return tables, nil
}

func (s *Store) HealthCheck() error {
	if _, err := os.Stat(s.dir); err != nil {
		return store.ConnectionErr(fmt.Errorf("temp store dir: %w", err))
	}
	return nil
}

func ensureExt(name, ext string) string {
	if strings.HasSuffix(name, ext) {
		return name
	}
	return name + ext
}
