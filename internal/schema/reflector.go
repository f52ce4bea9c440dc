package schema

import (
	"database/sql"
	"fmt"
	"strings"

	"tablesink/internal/dialect"
)

// Reflect returns the ordered column descriptors of a table as currently
// declared in the store's catalog. A non-existent table is a valid, non-error
// result: the returned slice is empty.
func Reflect(db *sql.DB, d dialect.Dialect, namespace, table string) ([]Column, error) {
	rows, err := db.Query(d.ColumnsQuery(), namespace, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s.%s: %w", namespace, table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var name, dataType, nullable sql.NullString
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", table, err)
		}
		if !name.Valid {
			continue
		}
		n := strings.ToUpper(nullable.String)
		cols = append(cols, Column{
			Name:       name.String,
			DataType:   dataType.String,
			IsNullable: n == "YES" || n == "Y",
			Class:      d.ClassifyType(dataType.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return cols, nil
}

// TableExists checks the catalog for a table in the namespace.
func TableExists(db *sql.DB, d dialect.Dialect, namespace, table string) (bool, error) {
	rows, err := db.Query(d.TableExistsQuery(), namespace, table)
	if err != nil {
		return false, fmt.Errorf("failed to check existence of %s.%s: %w", namespace, table, err)
	}
	defer rows.Close()
	exists := rows.Next()
	if err := rows.Err(); err != nil {
		return false, err
	}
	return exists, nil
}

// ListBaseTables returns every base table in the namespace, in catalog order.
func ListBaseTables(db *sql.DB, d dialect.Dialect, namespace string) ([]string, error) {
	rows, err := db.Query(d.TablesQuery(), namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// FilterBackupTables drops backup companions from a table listing.
func FilterBackupTables(tables []string) []string {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		if strings.HasSuffix(t, BackupSuffix) {
			continue
		}
		out = append(out, t)
	}
	return out
}
