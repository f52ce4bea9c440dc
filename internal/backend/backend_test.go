package backend_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"tablesink/internal/backend"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want backend.Kind
		ok   bool
	}{
		{"postgres", backend.KindPostgres, true},
		{"", backend.KindPostgres, true},
		{"csv", backend.KindCSV, true},
		{"temp", backend.KindTemp, true},
		{"arctic", backend.KindArctic, true},
		{"mongodb", 0, false},
		{"CSV", 0, false},
	}
	for _, c := range cases {
		got, err := backend.ParseKind(c.in)
		if c.ok != (err == nil) {
			t.Errorf("ParseKind(%q) err = %v", c.in, err)
			continue
		}
		if c.ok && got != c.want {
			t.Errorf("ParseKind(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestNewArcticUnsupported(t *testing.T) {
	_, err := backend.New(backend.KindArctic, backend.Options{Log: discard()})
	if err == nil {
		t.Fatal("arctic backend must fail construction")
	}
	if !strings.Contains(err.Error(), "arctic") {
		t.Errorf("error should name the kind: %v", err)
	}
}

func TestNewCSVProvidesBackup(t *testing.T) {
	be, err := backend.New(backend.KindCSV, backend.Options{Dir: t.TempDir(), Log: discard()})
	if err != nil {
		t.Fatal(err)
	}
	if be.Backup == nil {
		t.Error("csv backend must offer backups")
	}
}

func TestNewTempHasNoBackup(t *testing.T) {
	be, err := backend.New(backend.KindTemp, backend.Options{Dir: t.TempDir(), Log: discard()})
	if err != nil {
		t.Fatal(err)
	}
	if be.Backup != nil {
		t.Error("temp backend must not offer backups")
	}
}
