package tempfile_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"tablesink/internal/backend/tempfile"
	"tablesink/internal/dataset"
	"tablesink/internal/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func demo() *dataset.Dataset {
	ds := dataset.New()
	ds.AddColumn("id", []any{"1"})
	ds.AddColumn("name", []any{"alpha"})
	return ds
}

func TestSaveCSVRoundTrip(t *testing.T) {
	s, err := tempfile.New(t.TempDir(), discard())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Save("scratch", demo()); err != nil {
		t.Fatal(err)
	}
	back, err := s.Read("scratch")
	if err != nil {
		t.Fatal(err)
	}
	if back.Rows() != 1 {
		t.Errorf("rows = %d", back.Rows())
	}
}

func TestSaveJSON(t *testing.T) {
	dir := t.TempDir()
	s, _ := tempfile.New(dir, discard())

	if _, err := s.Save("scratch.json", demo()); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "scratch.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) == 0 {
		t.Error("json output empty")
	}
}

func TestSaveWithBackupDegrades(t *testing.T) {
	s, _ := tempfile.New(t.TempDir(), discard())
	if _, err := s.SaveWithBackup("scratch", demo()); err != nil {
		t.Fatalf("backup request must degrade to a plain save: %v", err)
	}
	if _, err := s.Read("scratch"); err != nil {
		t.Errorf("contents should still be written: %v", err)
	}
}

func TestReadMissingIsNotFound(t *testing.T) {
	s, _ := tempfile.New(t.TempDir(), discard())
	if _, err := s.Read("ghost"); !store.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestDefaultDirCreated(t *testing.T) {
	s, err := tempfile.New("", discard())
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(s.Dir())
	if err := s.HealthCheck(); err != nil {
		t.Errorf("fresh scratch dir unhealthy: %v", err)
	}
}
