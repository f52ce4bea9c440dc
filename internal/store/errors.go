package store

import (
	"errors"
	"fmt"
)

// Kind classifies failures at the subsystem boundary. Callers branch on the
// kind instead of matching error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConnection
	KindSchemaConflict
	KindCoercion
	KindTransaction
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConnection:
		return "connection"
	case KindSchemaConflict:
		return "schema conflict"
	case KindCoercion:
		return "coercion"
	case KindTransaction:
		return "transaction"
	default:
		return "unknown"
	}
}

// Error carries a failure kind and, when relevant, the table it concerns.
type Error struct {
	Kind  Kind
	Table string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Table != "" && e.Err != nil:
		return fmt.Sprintf("%s: table %s: %v", e.Kind, e.Table, e.Err)
	case e.Table != "":
		return fmt.Sprintf("%s: table %s", e.Kind, e.Table)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports that a referenced table or source is absent.
func NotFound(table string) *Error {
	return &Error{Kind: KindNotFound, Table: table}
}

// ConnectionErr wraps a failure to reach the store or keep a session alive.
func ConnectionErr(err error) *Error {
	return &Error{Kind: KindConnection, Err: err}
}

// SchemaConflict wraps an unexpected catalog state seen during synchronization.
func SchemaConflict(table string, err error) *Error {
	return &Error{Kind: KindSchemaConflict, Table: table, Err: err}
}

// TransactionErr wraps a failure inside an atomic replace or backup
// transaction. The transaction has been rolled back by the time this is seen.
func TransactionErr(table string, err error) *Error {
	return &Error{Kind: KindTransaction, Table: table, Err: err}
}

// KindOf extracts the failure kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a missing-table failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
