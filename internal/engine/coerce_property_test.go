package engine_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"tablesink/internal/dataset"
	"tablesink/internal/dialect"
	"tablesink/internal/engine"
	"tablesink/internal/schema"
)

func TestProperty_CoerceShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	cols := []schema.Column{
		{Name: "n", Class: dialect.ClassInteger},
	}

	properties.Property("output keeps every row, failures as nulls", prop.ForAll(
		func(values []string) bool {
			raw := make([]any, len(values))
			for i, v := range values {
				raw[i] = v
			}
			ds := dataset.New()
			ds.AddColumn("n", raw)

			out, reports := engine.Coerce(ds, cols, discard())
			c, ok := out.Column("n")
			if !ok || len(c.Values) != len(values) {
				return false
			}

			nulls := 0
			for _, v := range c.Values {
				if v == nil {
					nulls++
				}
			}
			// Inputs are non-nil strings, so every null is a counted failure.
			return len(reports) == 1 && reports[0].Failures == nulls
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.Property("coercion is deterministic", prop.ForAll(
		func(values []string) bool {
			raw := make([]any, len(values))
			for i, v := range values {
				raw[i] = v
			}
			ds := dataset.New()
			ds.AddColumn("n", raw)

			a, _ := engine.Coerce(ds, cols, discard())
			b, _ := engine.Coerce(ds, cols, discard())
			ca, _ := a.Column("n")
			cb, _ := b.Column("n")
			for i := range ca.Values {
				if ca.Values[i] != cb.Values[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.Property("round-tripping integers never fails", prop.ForAll(
		func(n int64) bool {
			ds := dataset.New()
			ds.AddColumn("n", []any{fmt.Sprintf("%d", n)})

			out, reports := engine.Coerce(ds, cols, discard())
			c, _ := out.Column("n")
			return reports[0].Failures == 0 && c.Values[0] == n
		},
		// Exactly representable as float64, the intermediate form.
		gen.Int64Range(-(1<<52), 1<<52),
	))

	properties.TestingRun(t)
}
