package store_test

import (
	"errors"
	"fmt"
	"testing"

	"tablesink/internal/store"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want store.Kind
	}{
		{store.NotFound("equities"), store.KindNotFound},
		{store.ConnectionErr(errors.New("refused")), store.KindConnection},
		{store.SchemaConflict("t", errors.New("x")), store.KindSchemaConflict},
		{store.TransactionErr("t", errors.New("x")), store.KindTransaction},
		{errors.New("plain"), store.KindUnknown},
		{nil, store.KindUnknown},
	}
	for _, c := range cases {
		if got := store.KindOf(c.err); got != c.want {
			t.Errorf("KindOf(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("saving: %w", store.NotFound("equities"))
	if !store.IsNotFound(err) {
		t.Error("wrapped not-found error must still be detected")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("deadlock")
	err := store.TransactionErr("equities", cause)
	if !errors.Is(err, cause) {
		t.Error("cause must survive wrapping")
	}
	if err.Error() != "transaction: table equities: deadlock" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestNotFoundMessage(t *testing.T) {
	if got := store.NotFound("equities").Error(); got != "not found: table equities" {
		t.Errorf("message = %q", got)
	}
}
