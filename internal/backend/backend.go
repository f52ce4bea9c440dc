// Package backend resolves a storage kind to a concrete implementation.
// The set of kinds is closed; capability interfaces keep callers honest
// about what each backend can do.
package backend

import (
	"fmt"
	"log/slog"

	"tablesink/internal/backend/csvfile"
	"tablesink/internal/backend/tempfile"
	"tablesink/internal/backup"
	"tablesink/internal/dataset"
	"tablesink/internal/dialect"
	"tablesink/internal/engine"
	"tablesink/internal/saver"
	"tablesink/internal/store"
)

type Kind int

const (
	KindPostgres Kind = iota
	KindCSV
	KindTemp
	KindArctic
)

func (k Kind) String() string {
	switch k {
	case KindPostgres:
		return "postgres"
	case KindCSV:
		return "csv"
	case KindTemp:
		return "temp"
	case KindArctic:
		return "arctic"
	default:
		return "unknown"
	}
}

// ParseKind maps a configuration string to a Kind. The set is closed:
// anything unrecognized is an error, never a silent default.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "postgres", "":
		return KindPostgres, nil
	case "csv":
		return KindCSV, nil
	case "temp":
		return KindTemp, nil
	case "arctic":
		return KindArctic, nil
	default:
		return 0, fmt.Errorf("unknown backend kind %q", s)
	}
}

// Saver is the write side every usable backend offers.
type Saver interface {
	Save(table string, ds *dataset.Dataset) ([]engine.Report, error)
	SaveWithBackup(table string, ds *dataset.Dataset) ([]engine.Report, error)
	HealthCheck() error
}

// Source is the read side.
type Source interface {
	Read(table string) (*dataset.Dataset, error)
	List() ([]string, error)
}

// BackupService versions table contents; not every backend has one.
type BackupService interface {
	BackupOne(table string) error
	BackupAll(onProgress func(table string)) (done []string, failed []backup.TableError, err error)
}

// Backend bundles the capabilities a resolved kind provides. Backup is nil
// when the kind cannot version its contents.
type Backend struct {
	Kind   Kind
	Saver  Saver
	Source Source
	Backup BackupService
}

// Options carries everything any kind might need; each kind picks what it
// uses.
type Options struct {
	Store store.Config
	Dir   string
	Log   *slog.Logger
}

// New constructs the backend for a kind. Arctic is part of the closed set
// but has no client here, so asking for it fails loudly instead of being
// mistaken for a typo.
func New(kind Kind, opts Options) (*Backend, error) {
	switch kind {
	case KindPostgres:
		client := store.NewClient(opts.Store)
		d := dialect.Get(opts.Store.DriverName())
		ns := opts.Store.Namespace
		sv := saver.New(client, d, ns, opts.Log)
		bk := backup.New(client, d, ns, opts.Log)
		return &Backend{Kind: kind, Saver: sv, Source: sv, Backup: bk}, nil
	case KindCSV:
		cs, err := csvfile.New(opts.Dir, opts.Log)
		if err != nil {
			return nil, err
		}
		return &Backend{Kind: kind, Saver: cs, Source: cs, Backup: cs}, nil
	case KindTemp:
		ts, err := tempfile.New(opts.Dir, opts.Log)
		if err != nil {
			return nil, err
		}
		return &Backend{Kind: kind, Saver: ts, Source: ts}, nil
	case KindArctic:
		return nil, fmt.Errorf("backend kind %s is not supported in this build", kind)
	default:
		return nil, fmt.Errorf("unknown backend kind %d", kind)
	}
}
