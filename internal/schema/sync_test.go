package schema_test

import (
	"testing"

	"tablesink/internal/dataset"
	"tablesink/internal/dialect"
	"tablesink/internal/schema"
)

func TestInferSpecs(t *testing.T) {
	ds := dataset.New()
	ds.AddColumn("id", []any{int64(1), int64(2)})
	ds.AddColumn("price", []any{1.5, nil})
	ds.AddColumn("name", []any{"a", "b"})
	ds.AddColumn("empty", []any{nil, nil})

	specs := schema.InferSpecs(ds, dialect.Get("postgres"))

	want := map[string]string{
		"id":    "BIGINT",
		"price": "DOUBLE PRECISION",
		"name":  "TEXT",
		"empty": "TEXT",
	}
	if len(specs) != len(want) {
		t.Fatalf("got %d specs, want %d", len(specs), len(want))
	}
	for _, s := range specs {
		if want[s.Name] != s.SQLType {
			t.Errorf("%s: got %s, want %s", s.Name, s.SQLType, want[s.Name])
		}
	}
	// column order must follow the dataset
	if specs[0].Name != "id" || specs[3].Name != "empty" {
		t.Errorf("specs out of order: %v", specs)
	}
}

func TestMissingColumns(t *testing.T) {
	ds := dataset.New()
	ds.AddColumn("id", []any{int64(1)})
	ds.AddColumn("Price", []any{1.5})
	ds.AddColumn("sector", []any{"x"})

	existing := []schema.Column{
		{Name: "id", DataType: "bigint"},
		{Name: "price", DataType: "double precision"},
	}

	missing := schema.MissingColumns(ds, existing)
	if len(missing) != 1 || missing[0].Name != "sector" {
		t.Errorf("missing = %v, want only sector (match is case-insensitive)", missing)
	}
}

func TestFilterBackupTables(t *testing.T) {
	in := []string{"equities", "equities_backup", "bonds", "bonds_backup", "backup_log"}
	got := schema.FilterBackupTables(in)
	want := []string{"equities", "bonds", "backup_log"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}
