package dialect

import (
	"fmt"
	"strings"

	"tablesink/internal/dataset"
)

// PostgresDialect is the reference implementation: the atomic replace and
// versioned backup protocols were designed around Postgres DDL semantics
// (transactional DDL, CREATE TABLE ... LIKE INCLUDING ALL).
type PostgresDialect struct{}

func (d *PostgresDialect) TablesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name`
}

func (d *PostgresDialect) ColumnsQuery() string {
	return `SELECT column_name, data_type, is_nullable FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`
}

func (d *PostgresDialect) TableExistsQuery() string {
	return `SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = $2`
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d *PostgresDialect) Qualify(namespace, table string) string {
	return d.QuoteIdent(namespace) + "." + d.QuoteIdent(table)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) CreateSchemaSQL(namespace string) string {
	return fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", d.QuoteIdent(namespace))
}

func (d *PostgresDialect) CreateTableSQL(namespace, table string, cols []ColumnSpec) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = d.QuoteIdent(c.Name) + " " + c.SQLType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.Qualify(namespace, table), strings.Join(defs, ", "))
}

func (d *PostgresDialect) AddColumnSQL(namespace, table, column, sqlType string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
		d.Qualify(namespace, table), d.QuoteIdent(column), sqlType)
}

func (d *PostgresDialect) CloneTableSQL(namespace, shadow, source string) string {
	// INCLUDING ALL carries indexes, constraints and defaults into the shadow.
	return fmt.Sprintf("CREATE TABLE %s (LIKE %s INCLUDING ALL)",
		d.Qualify(namespace, shadow), d.Qualify(namespace, source))
}

func (d *PostgresDialect) RenameTableSQL(namespace, from, to string) string {
	// RENAME TO takes an unqualified new name; the table stays in its schema.
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		d.Qualify(namespace, from), d.QuoteIdent(to))
}

func (d *PostgresDialect) DropTableSQL(namespace, table string) string {
	return fmt.Sprintf("DROP TABLE %s", d.Qualify(namespace, table))
}

func (d *PostgresDialect) CreateBackupTableSQL(namespace, backup, source string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
	LIKE %s INCLUDING ALL,
	backup_timestamp TIMESTAMPTZ NOT NULL,
	backup_year INTEGER NOT NULL,
	backup_week INTEGER NOT NULL
)`, d.Qualify(namespace, backup), d.Qualify(namespace, source))
}

func (d *PostgresDialect) BackupIndexSQL(namespace, backup string) []string {
	q := d.Qualify(namespace, backup)
	return []string{
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (backup_year, backup_week)",
			d.QuoteIdent("idx_"+backup+"_year_week"), q),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (backup_timestamp)",
			d.QuoteIdent("idx_"+backup+"_timestamp"), q),
	}
}

func (d *PostgresDialect) BackupInsertSQL(namespace, backup, source string) string {
	return fmt.Sprintf("INSERT INTO %s SELECT *, $1, $2, $3 FROM %s",
		d.Qualify(namespace, backup), d.Qualify(namespace, source))
}

func (d *PostgresDialect) InsertSQL(namespace, table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Qualify(namespace, table), strings.Join(quoted, ", "), vals)
}

func (d *PostgresDialect) SelectAllSQL(namespace, table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.Qualify(namespace, table))
}

func (d *PostgresDialect) TypeName(k dataset.Kind) string {
	switch k {
	case dataset.Int:
		return "BIGINT"
	case dataset.Float:
		return "DOUBLE PRECISION"
	case dataset.Bool:
		return "BOOLEAN"
	case dataset.Time:
		return "TIMESTAMP"
	case dataset.JSON:
		return "JSONB"
	case dataset.Bytes:
		return "BYTEA"
	default:
		return "TEXT"
	}
}

func (d *PostgresDialect) ClassifyType(catalogType string) TypeClass {
	switch strings.ToLower(strings.TrimSpace(catalogType)) {
	case "integer", "bigint", "smallint", "serial", "bigserial", "int2", "int4", "int8":
		return ClassInteger
	case "numeric", "decimal", "real", "double precision", "float4", "float8":
		return ClassFloat
	case "boolean", "bool":
		return ClassBoolean
	case "timestamp without time zone", "timestamp with time zone", "timestamptz", "timestamp",
		"time without time zone", "time with time zone":
		return ClassTimestamp
	case "date":
		return ClassDate
	case "text", "character varying", "character", "varchar", "char", "bpchar":
		return ClassText
	case "json", "jsonb":
		return ClassJSON
	case "bytea":
		return ClassBinary
	default:
		return ClassOther
	}
}

func (d *PostgresDialect) HealthQuery() string {
	return "SELECT 1"
}
