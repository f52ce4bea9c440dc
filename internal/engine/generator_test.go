package engine_test

import (
	"testing"

	"tablesink/internal/dialect"
	"tablesink/internal/engine"
	"tablesink/internal/schema"
)

func TestDemoDatasetShape(t *testing.T) {
	ds := engine.DemoDataset(50)
	if ds.Rows() != 50 {
		t.Errorf("rows = %d, want 50", ds.Rows())
	}
	for _, name := range []string{"id", "ticker", "company", "sector", "price", "change_pct", "volume", "active", "listed_at"} {
		if _, ok := ds.Column(name); !ok {
			t.Errorf("missing column %s", name)
		}
	}
}

func TestDemoDatasetCoerces(t *testing.T) {
	ds := engine.DemoDataset(200)

	cols := []schema.Column{
		{Name: "id", Class: dialect.ClassInteger},
		{Name: "price", Class: dialect.ClassFloat},
		{Name: "change_pct", Class: dialect.ClassFloat},
		{Name: "volume", Class: dialect.ClassInteger},
		{Name: "active", Class: dialect.ClassBoolean},
		{Name: "listed_at", Class: dialect.ClassDate},
	}
	out, reports := engine.Coerce(ds, cols, discard())

	// The deliberate "-" junk in price is the only thing that may fail.
	for _, r := range reports {
		if r.Column != "price" && r.Failures > 0 {
			t.Errorf("column %s: %d unexpected failures (rows %v)", r.Column, r.Failures, r.Sample)
		}
	}
	if out.Rows() != 200 {
		t.Errorf("rows = %d, want 200", out.Rows())
	}
}
