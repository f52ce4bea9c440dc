package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numberJunk     = regexp.MustCompile(`[^0-9eE%+\-.,]`)
	loneCommaAsDot = regexp.MustCompile(`^-?\d+,\d{1,2}$`)
)

// normalizeNumber strips currency symbols, whitespace and grouping from a
// numeric-looking string and rewrites locale separators so the result parses
// with a plain dot decimal point. A trailing percent marker is stripped
// without scaling; that policy is the caller's. Returns "" when nothing
// numeric is left.
func normalizeNumber(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = numberJunk.ReplaceAllString(s, "")
	s = strings.TrimSuffix(s, "%")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		// Both separators present: the rightmost one is the decimal point.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		// A lone comma followed by one or two trailing digits reads as a
		// decimal separator ("1234,56"); anything else is grouping.
		if loneCommaAsDot.MatchString(s) {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	s = strings.TrimLeft(s, "+")
	if s == "-" {
		return ""
	}
	return s
}

// parseNumber coerces a raw value to float64. Non-nil values of any type are
// rendered to text first, normalized, then parsed; a high-precision decimal
// parse is the fallback for strings strconv rejects. Bools read as 0/1 for
// stores that declare boolean columns as a numeric type.
func parseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}

	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		s = fmt.Sprint(v)
	}

	s = normalizeNumber(s)
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	// Last attempt: decimal parse, safer for very long digit strings.
	if dec, err := decimal.NewFromString(s); err == nil {
		return dec.InexactFloat64(), true
	}
	return 0, false
}
