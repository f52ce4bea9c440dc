package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ReadCSV decodes a header-first CSV stream into a Dataset of text columns.
// Empty cells become nils. Coercion to storage types happens later, against
// the destination table's reflected schema.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	values := make([][]any, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		for i := range header {
			var v any
			if i < len(rec) && rec[i] != "" {
				v = rec[i]
			}
			values[i] = append(values[i], v)
		}
	}

	ds := New()
	for i, name := range header {
		if err := ds.AddColumn(name, values[i]); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// WriteCSV encodes the dataset as header-first CSV. Nils render as empty
// cells; everything else uses its canonical text form.
func WriteCSV(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Names()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	rows := ds.Rows()
	cols := ds.Columns()
	rec := make([]string, len(cols))
	for i := 0; i < rows; i++ {
		for c := range cols {
			rec[c] = formatCell(cols[c].Values[i])
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
