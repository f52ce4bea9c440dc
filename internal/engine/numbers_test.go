package engine

import (
	"math"
	"testing"
)

func TestNormalizeNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234", "1234"},
		{" 42 ", "42"},
		{"$1,234", "1234"},
		{"€99,50", "99.50"},
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1.234.567,89", "1234567.89"},
		{"1,234,567", "1234567"},
		{"1234,56", "1234.56"},
		{"1234,5", "1234.5"},
		{"1,234", "1234"},
		{"5%", "5"},
		{"12.5%", "12.5"},
		{"+42", "42"},
		{"-1,5", "-1.5"},
		{"-", ""},
		{"", ""},
		{"   ", ""},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := normalizeNumber(c.in); got != c.want {
			t.Errorf("normalizeNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{true, 1, true},
		{false, 0, true},
		{int(7), 7, true},
		{int64(-3), -3, true},
		{uint8(255), 255, true},
		{float64(1.5), 1.5, true},
		{float32(2), 2, true},
		{"1.234,56", 1234.56, true},
		{"$1,234", 1234, true},
		{"5%", 5, true},
		{"1e3", 1000, true},
		{[]byte("42"), 42, true},
		{"-", 0, false},
		{"n/a", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseNumber(c.in)
		if ok != c.ok {
			t.Errorf("parseNumber(%v) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && math.Abs(got-c.want) > 1e-9 {
			t.Errorf("parseNumber(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseNumberPercentNotScaled(t *testing.T) {
	got, ok := parseNumber("37.5%")
	if !ok || got != 37.5 {
		t.Fatalf("expected 37.5, got %v (ok=%v)", got, ok)
	}
}
