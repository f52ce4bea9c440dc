package engine

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"tablesink/internal/dataset"
	"tablesink/internal/dialect"
	"tablesink/internal/schema"
)

// Report describes the outcome of coercing one column: how many values
// could not be converted and a bounded sample of their row positions.
// Failed values are stored as null; coercion never aborts a save.
type Report struct {
	Column   string
	Class    dialect.TypeClass
	Failures int
	Sample   []int
}

const failureSampleLimit = 10

var truthy = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "1": true, "on": true,
}

var falsy = map[string]bool{
	"false": true, "f": true, "no": true, "n": true, "0": true, "off": true,
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"20060102",
}

// Coerce aligns dataset values with the declared column types of the target
// table. Matching is case-insensitive, and matched columns come back under
// the table's declared spelling so later statements bind the identifier the
// catalog actually holds. Columns the table does not know keep their names
// and values untouched; values that cannot be converted become null and are
// counted in the returned reports. The input dataset is not modified.
func Coerce(ds *dataset.Dataset, cols []schema.Column, log *slog.Logger) (*dataset.Dataset, []Report) {
	declared := make(map[string]schema.Column, len(cols))
	for _, c := range cols {
		declared[strings.ToLower(c.Name)] = c
	}

	out := dataset.New()
	var reports []Report
	for _, col := range ds.Columns() {
		target, known := declared[strings.ToLower(col.Name)]
		if !known {
			out.AddColumn(col.Name, col.Values)
			continue
		}
		class := target.Class
		if class == dialect.ClassOther {
			log.Warn("unknown storage type, keeping values as text", "column", target.Name)
		}

		values := make([]any, len(col.Values))
		rep := Report{Column: target.Name, Class: class}
		for i, v := range col.Values {
			if v == nil {
				values[i] = nil
				continue
			}
			coerced, ok := coerceValue(class, v)
			if !ok {
				values[i] = nil
				rep.Failures++
				if len(rep.Sample) < failureSampleLimit {
					rep.Sample = append(rep.Sample, i)
				}
				continue
			}
			values[i] = coerced
		}
		out.AddColumn(target.Name, values)
		if rep.Failures > 0 {
			log.Warn("coercion failures",
				"column", target.Name,
				"class", class.String(),
				"failures", rep.Failures,
				"sample_rows", rep.Sample)
		}
		reports = append(reports, rep)
	}
	return out, reports
}

func coerceValue(class dialect.TypeClass, v any) (any, bool) {
	switch class {
	case dialect.ClassInteger:
		return coerceInteger(v)
	case dialect.ClassFloat:
		f, ok := parseNumber(v)
		if !ok {
			return nil, false
		}
		return f, true
	case dialect.ClassBoolean:
		return coerceBool(v)
	case dialect.ClassTimestamp:
		return coerceTime(v, false)
	case dialect.ClassDate:
		return coerceTime(v, true)
	case dialect.ClassJSON:
		return coerceJSON(v)
	case dialect.ClassBinary:
		return coerceBinary(v)
	default:
		return coerceText(v)
	}
}

// coerceInteger accepts numbers whose fractional part is negligible, so
// float-typed exports like 42.0 survive the round trip. Values outside the
// int64 range fail instead of wrapping around on conversion.
func coerceInteger(v any) (any, bool) {
	f, ok := parseNumber(v)
	if !ok {
		return nil, false
	}
	r := math.Round(f)
	if math.Abs(f-r) > 1e-9 {
		return nil, false
	}
	if math.IsNaN(r) || r < math.MinInt64 || r >= math.MaxInt64 {
		return nil, false
	}
	return int64(r), true
}

func coerceBool(v any) (any, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s := fmt.Sprint(x)
		return s == "1", s == "1" || s == "0"
	}
	s := strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
	if truthy[s] {
		return true, true
	}
	if falsy[s] {
		return false, true
	}
	return nil, false
}

func coerceTime(v any, dateOnly bool) (any, bool) {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, false
		}
		parsed := false
		for _, layout := range timeLayouts {
			if p, err := time.Parse(layout, s); err == nil {
				t, parsed = p, true
				break
			}
		}
		if !parsed {
			return nil, false
		}
	default:
		return nil, false
	}
	if dateOnly {
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	return t, true
}

// coerceJSON parses strings into structured values when possible; strings
// that are not valid JSON stay as-is and are not counted as failures.
func coerceJSON(v any) (any, bool) {
	switch x := v.(type) {
	case map[string]any, []any:
		return x, true
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(x), &parsed); err == nil {
			return parsed, true
		}
		return x, true
	case []byte:
		var parsed any
		if err := json.Unmarshal(x, &parsed); err == nil {
			return parsed, true
		}
		return string(x), true
	default:
		return v, true
	}
}

func coerceBinary(v any) (any, bool) {
	switch x := v.(type) {
	case []byte:
		return x, true
	case string:
		return []byte(x), true
	default:
		return nil, false
	}
}

func coerceText(v any) (any, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	default:
		return fmt.Sprint(x), true
	}
}
