package dataset_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tablesink/internal/dataset"
)

func TestAddColumn(t *testing.T) {
	ds := dataset.New()
	if err := ds.AddColumn("a", []any{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := ds.AddColumn("a", []any{3}); err == nil {
		t.Error("duplicate column name must be rejected")
	}
	if err := ds.AddColumn("", []any{}); err == nil {
		t.Error("empty column name must be rejected")
	}
	if ds.Rows() != 2 {
		t.Errorf("rows = %d, want 2", ds.Rows())
	}
}

func TestRowSlicesAcrossColumns(t *testing.T) {
	ds := dataset.New()
	ds.AddColumn("id", []any{int64(1), int64(2)})
	ds.AddColumn("name", []any{"a", "b"})

	row := ds.Row(1)
	if row[0] != int64(2) || row[1] != "b" {
		t.Errorf("row = %v", row)
	}
}

func TestInferKind(t *testing.T) {
	cases := []struct {
		name   string
		values []any
		want   dataset.Kind
	}{
		{"ints", []any{int64(1), int64(2)}, dataset.Int},
		{"floats", []any{1.5, 2.5}, dataset.Float},
		{"integral floats count as ints", []any{1.0, 2.0}, dataset.Int},
		{"ints and floats widen to float", []any{int64(1), 2.5}, dataset.Float},
		{"nil ignored", []any{nil, int64(1), nil}, dataset.Int},
		{"all nil is text", []any{nil, nil}, dataset.Text},
		{"mixed is text", []any{int64(1), "x"}, dataset.Text},
		{"bools", []any{true, false}, dataset.Bool},
		{"times", []any{time.Now()}, dataset.Time},
		{"maps are json", []any{map[string]any{"a": 1}}, dataset.JSON},
		{"bytes", []any{[]byte("x")}, dataset.Bytes},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := dataset.InferKind(c.values); got != c.want {
				t.Errorf("InferKind(%v) = %s, want %s", c.values, got, c.want)
			}
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	ds := dataset.New()
	ds.AddColumn("id", []any{"1", "2", "3"})
	ds.AddColumn("name", []any{"alpha", nil, "gamma"})

	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, ds); err != nil {
		t.Fatal(err)
	}

	back, err := dataset.ReadCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := back.Names(); len(got) != 2 || got[0] != "id" || got[1] != "name" {
		t.Fatalf("names = %v", got)
	}
	c, _ := back.Column("name")
	if c.Values[1] != nil {
		t.Errorf("empty cell should read back as nil, got %v", c.Values[1])
	}
	if c.Values[2] != "gamma" {
		t.Errorf("value = %v", c.Values[2])
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	ds, err := dataset.ReadCSV(strings.NewReader("a,b,c\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !ds.Empty() {
		t.Errorf("expected empty dataset, rows = %d", ds.Rows())
	}
	if len(ds.Names()) != 3 {
		t.Errorf("names = %v", ds.Names())
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	if _, err := dataset.ReadCSV(strings.NewReader("")); err == nil {
		t.Error("a CSV without a header row must be rejected")
	}
}
