package saver

import (
	"bytes"
	"testing"
)

func TestScanValue(t *testing.T) {
	raw := []byte{0x00, 0xff, 0x10}

	// Text columns come back from drivers as []byte and read as strings.
	if got := scanValue([]byte("alpha"), false); got != "alpha" {
		t.Errorf("text cell = %v (%T), want string", got, got)
	}

	// Binary columns keep their bytes untouched.
	got := scanValue(raw, true)
	b, ok := got.([]byte)
	if !ok || !bytes.Equal(b, raw) {
		t.Errorf("binary cell = %v (%T), want original bytes", got, got)
	}

	if got := scanValue(int64(7), false); got != int64(7) {
		t.Errorf("scalar cell = %v, want 7", got)
	}
	if got := scanValue(nil, true); got != nil {
		t.Errorf("nil cell = %v, want nil", got)
	}
}
