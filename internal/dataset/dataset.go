// Package dataset models the tabular payload handed to the ingestion layer:
// an ordered sequence of named columns, each an ordered sequence of values of
// one semantic kind, with nils permitted anywhere.
package dataset

import (
	"fmt"
	"math"
	"time"
)

// Kind is the semantic kind of a column's values, used for storage type
// inference when a destination table is first created.
type Kind int

const (
	Unknown Kind = iota
	Int
	Float
	Bool
	Time
	Text
	JSON
	Bytes
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Time:
		return "time"
	case Text:
		return "text"
	case JSON:
		return "json"
	case Bytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Column is one named, ordered value sequence. Values may be nil.
type Column struct {
	Name   string
	Values []any
}

// Dataset is an ordered collection of uniquely named columns. Column order is
// insertion order. Every column is expected to have the same length; a
// mismatch is a caller contract violation and is not validated here.
type Dataset struct {
	cols  []Column
	index map[string]int
}

func New() *Dataset {
	return &Dataset{index: make(map[string]int)}
}

// AddColumn appends a column. Duplicate names are rejected.
func (d *Dataset) AddColumn(name string, values []any) error {
	if name == "" {
		return fmt.Errorf("dataset: empty column name")
	}
	if _, ok := d.index[name]; ok {
		return fmt.Errorf("dataset: duplicate column %q", name)
	}
	d.index[name] = len(d.cols)
	d.cols = append(d.cols, Column{Name: name, Values: values})
	return nil
}

// Columns returns the columns in insertion order.
func (d *Dataset) Columns() []Column { return d.cols }

// Names returns the column names in insertion order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.cols[i], true
}

// Rows returns the row count, taken from the first column.
func (d *Dataset) Rows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return len(d.cols[0].Values)
}

// Empty reports whether the dataset has no rows or no columns.
func (d *Dataset) Empty() bool { return d.Rows() == 0 }

// Row materializes row i across all columns, in column order.
func (d *Dataset) Row(i int) []any {
	row := make([]any, len(d.cols))
	for c := range d.cols {
		row[c] = d.cols[c].Values[i]
	}
	return row
}

// InferKind derives the semantic kind of a value sequence. A uniform column
// keeps its kind; ints and floats widen to Float; any other mix collapses to
// Text. Nils are ignored; an all-nil column is Text.
func InferKind(values []any) Kind {
	kind := Unknown
	for _, v := range values {
		if v == nil {
			continue
		}
		k := kindOf(v)
		switch {
		case kind == Unknown:
			kind = k
		case kind == k:
		case kind == Int && k == Float, kind == Float && k == Int:
			kind = Float
		default:
			return Text
		}
	}
	if kind == Unknown {
		return Text
	}
	return kind
}

func kindOf(v any) Kind {
	switch x := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int
	case float32:
		if float64(x) == math.Trunc(float64(x)) {
			return Int
		}
		return Float
	case float64:
		if x == math.Trunc(x) {
			return Int
		}
		return Float
	case bool:
		return Bool
	case time.Time:
		return Time
	case []byte:
		return Bytes
	case map[string]any, []any:
		return JSON
	default:
		return Text
	}
}
