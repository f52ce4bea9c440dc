package csvfile_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tablesink/internal/backend/csvfile"
	"tablesink/internal/dataset"
	"tablesink/internal/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func demo() *dataset.Dataset {
	ds := dataset.New()
	ds.AddColumn("id", []any{"1", "2"})
	ds.AddColumn("name", []any{"alpha", "beta"})
	return ds
}

func TestSaveAndRead(t *testing.T) {
	s, err := csvfile.New(t.TempDir(), discard())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Save("equities", demo()); err != nil {
		t.Fatal(err)
	}

	back, err := s.Read("equities")
	if err != nil {
		t.Fatal(err)
	}
	if back.Rows() != 2 {
		t.Errorf("rows = %d, want 2", back.Rows())
	}
	c, _ := back.Column("name")
	if c.Values[0] != "alpha" {
		t.Errorf("value = %v", c.Values[0])
	}
}

func TestSaveReplacesContents(t *testing.T) {
	s, _ := csvfile.New(t.TempDir(), discard())
	s.Save("t", demo())

	smaller := dataset.New()
	smaller.AddColumn("id", []any{"9"})
	if _, err := s.Save("t", smaller); err != nil {
		t.Fatal(err)
	}

	back, _ := s.Read("t")
	if back.Rows() != 1 {
		t.Errorf("old contents must be fully replaced, rows = %d", back.Rows())
	}
}

func TestReadMissingIsNotFound(t *testing.T) {
	s, _ := csvfile.New(t.TempDir(), discard())
	_, err := s.Read("ghost")
	if !store.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestBackupOne(t *testing.T) {
	dir := t.TempDir()
	s, _ := csvfile.New(dir, discard())
	s.Save("equities", demo())

	if err := s.BackupOne("equities"); err != nil {
		t.Fatal(err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "backups", "*", "equities_backup_*.csv"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one backup file, got %v (err=%v)", matches, err)
	}
}

func TestBackupMissingIsNotFound(t *testing.T) {
	s, _ := csvfile.New(t.TempDir(), discard())
	if err := s.BackupOne("ghost"); !store.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestListSkipsBackups(t *testing.T) {
	dir := t.TempDir()
	s, _ := csvfile.New(dir, discard())
	s.Save("a", demo())
	s.Save("b", demo())
	s.BackupOne("a")

	tables, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 2 || tables[0] != "a" || tables[1] != "b" {
		t.Errorf("tables = %v", tables)
	}
}

func TestBackupAllCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	s, _ := csvfile.New(dir, discard())
	s.Save("a", demo())
	s.Save("b", demo())

	var seen []string
	done, failed, err := s.BackupAll(func(table string) { seen = append(seen, table) })
	if err != nil {
		t.Fatal(err)
	}
	if len(done) != 2 || len(failed) != 0 {
		t.Errorf("done = %v, failed = %v", done, failed)
	}
	if len(seen) != 2 {
		t.Errorf("progress calls = %v", seen)
	}
}

func TestSaveWithBackupKeepsOldContents(t *testing.T) {
	dir := t.TempDir()
	s, _ := csvfile.New(dir, discard())
	s.Save("t", demo())

	next := dataset.New()
	next.AddColumn("id", []any{"9"})
	if _, err := s.SaveWithBackup("t", next); err != nil {
		t.Fatal(err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "backups", "*", "t_backup_*.csv"))
	if len(matches) != 1 {
		t.Fatalf("expected a backup of the previous contents, got %v", matches)
	}
	raw, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "alpha") {
		t.Errorf("backup should hold the old contents: %q", raw)
	}
}
