// Package dialect abstracts the store-specific SQL surface: catalog
// introspection, DDL for table creation and the atomic rename sequence,
// bulk-insert statements, and the mapping between dataset kinds, declared
// storage types, and coercion classes.
package dialect

import "tablesink/internal/dataset"

// TypeClass classifies a declared storage type for the coercion engine.
type TypeClass int

const (
	ClassOther TypeClass = iota
	ClassInteger
	ClassFloat
	ClassBoolean
	ClassTimestamp
	ClassDate
	ClassText
	ClassJSON
	ClassBinary
)

func (c TypeClass) String() string {
	switch c {
	case ClassInteger:
		return "integer"
	case ClassFloat:
		return "float"
	case ClassBoolean:
		return "boolean"
	case ClassTimestamp:
		return "timestamp"
	case ClassDate:
		return "date"
	case ClassText:
		return "text"
	case ClassJSON:
		return "json"
	case ClassBinary:
		return "binary"
	default:
		return "other"
	}
}

// ColumnSpec is a column definition handed to CreateTableSQL.
type ColumnSpec struct {
	Name    string
	SQLType string
}

// Dialect abstracts database-specific SQL. All table and namespace arguments
// are raw, unquoted names; each implementation does its own quoting and
// qualification.
type Dialect interface {
	// Catalog introspection. TablesQuery binds the namespace; ColumnsQuery
	// and TableExistsQuery bind namespace then table. ColumnsQuery yields
	// (column_name, data_type, is_nullable) in ordinal position order;
	// TableExistsQuery yields a single row when the table exists.
	TablesQuery() string
	ColumnsQuery() string
	TableExistsQuery() string

	// Identifier handling.
	QuoteIdent(name string) string
	Qualify(namespace, table string) string
	Placeholder(index int) string

	// DDL. CreateSchemaSQL may return "" when the store has no separate
	// namespace DDL (the caller skips it).
	CreateSchemaSQL(namespace string) string
	CreateTableSQL(namespace, table string, cols []ColumnSpec) string
	AddColumnSQL(namespace, table, column, sqlType string) string
	CloneTableSQL(namespace, shadow, source string) string
	RenameTableSQL(namespace, from, to string) string
	DropTableSQL(namespace, table string) string

	// Backup DDL/DML. CreateBackupTableSQL clones the source structure and
	// appends the backup_timestamp/backup_year/backup_week metadata columns;
	// BackupInsertSQL appends a stamped snapshot and binds exactly those
	// three values, in that order.
	CreateBackupTableSQL(namespace, backup, source string) string
	BackupIndexSQL(namespace, backup string) []string
	BackupInsertSQL(namespace, backup, source string) string

	// DML.
	InsertSQL(namespace, table string, cols []string) string
	SelectAllSQL(namespace, table string) string

	// Typing. TypeName maps an inferred dataset kind to the declared storage
	// type used at table creation; ClassifyType maps a reflected catalog type
	// back to a coercion class.
	TypeName(k dataset.Kind) string
	ClassifyType(catalogType string) TypeClass

	HealthQuery() string
}
