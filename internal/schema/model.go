// Package schema reflects table structure out of the store's catalog and
// synchronizes it with incoming datasets: tables are created on first save,
// missing columns are added, and existing columns are never removed or
// retyped.
package schema

import "tablesink/internal/dialect"

// Column is a reflected column descriptor: the declared name and storage
// type from the catalog, plus the coercion class the type maps to.
type Column struct {
	Name       string
	DataType   string
	IsNullable bool
	Class      dialect.TypeClass
}

// BackupSuffix marks a table as a versioned backup companion. Tables carrying
// the suffix are excluded from batch backups.
const BackupSuffix = "_backup"
