package dialect

import (
	"fmt"
	"strings"

	"tablesink/internal/dataset"
)

// MysqlDialect treats the namespace as the database name. DDL is not
// transactional on MySQL; each RENAME TABLE statement is atomic on its own,
// which keeps the swap window to the instant between the two renames.
type MysqlDialect struct{}

func (d *MysqlDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MysqlDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`
}

func (d *MysqlDialect) TableExistsQuery() string {
	return `SELECT 1 FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?`
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *MysqlDialect) Qualify(namespace, table string) string {
	return d.QuoteIdent(namespace) + "." + d.QuoteIdent(table)
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) CreateSchemaSQL(namespace string) string {
	return fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", d.QuoteIdent(namespace))
}

func (d *MysqlDialect) CreateTableSQL(namespace, table string, cols []ColumnSpec) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = d.QuoteIdent(c.Name) + " " + c.SQLType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.Qualify(namespace, table), strings.Join(defs, ", "))
}

func (d *MysqlDialect) AddColumnSQL(namespace, table, column, sqlType string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
		d.Qualify(namespace, table), d.QuoteIdent(column), sqlType)
}

func (d *MysqlDialect) CloneTableSQL(namespace, shadow, source string) string {
	// LIKE carries column definitions and indexes.
	return fmt.Sprintf("CREATE TABLE %s LIKE %s",
		d.Qualify(namespace, shadow), d.Qualify(namespace, source))
}

func (d *MysqlDialect) RenameTableSQL(namespace, from, to string) string {
	return fmt.Sprintf("RENAME TABLE %s TO %s",
		d.Qualify(namespace, from), d.Qualify(namespace, to))
}

func (d *MysqlDialect) DropTableSQL(namespace, table string) string {
	return fmt.Sprintf("DROP TABLE %s", d.Qualify(namespace, table))
}

func (d *MysqlDialect) CreateBackupTableSQL(namespace, backup, source string) string {
	// CREATE TABLE ... SELECT clones column types but not indexes; the backup
	// indexes are added separately via BackupIndexSQL.
	return fmt.Sprintf(
		"CREATE TABLE %s AS SELECT s.*, CAST('1970-01-01' AS DATETIME) AS backup_timestamp, 0 AS backup_year, 0 AS backup_week FROM %s s WHERE 1 = 0",
		d.Qualify(namespace, backup), d.Qualify(namespace, source))
}

func (d *MysqlDialect) BackupIndexSQL(namespace, backup string) []string {
	q := d.Qualify(namespace, backup)
	return []string{
		fmt.Sprintf("CREATE INDEX %s ON %s (backup_year, backup_week)",
			d.QuoteIdent("idx_"+backup+"_year_week"), q),
		fmt.Sprintf("CREATE INDEX %s ON %s (backup_timestamp)",
			d.QuoteIdent("idx_"+backup+"_timestamp"), q),
	}
}

func (d *MysqlDialect) BackupInsertSQL(namespace, backup, source string) string {
	return fmt.Sprintf("INSERT INTO %s SELECT s.*, ?, ?, ? FROM %s s",
		d.Qualify(namespace, backup), d.Qualify(namespace, source))
}

func (d *MysqlDialect) InsertSQL(namespace, table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Qualify(namespace, table), strings.Join(quoted, ", "), vals)
}

func (d *MysqlDialect) SelectAllSQL(namespace, table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.Qualify(namespace, table))
}

func (d *MysqlDialect) TypeName(k dataset.Kind) string {
	switch k {
	case dataset.Int:
		return "BIGINT"
	case dataset.Float:
		return "DOUBLE"
	case dataset.Bool:
		return "BOOLEAN"
	case dataset.Time:
		return "DATETIME"
	case dataset.JSON:
		return "JSON"
	case dataset.Bytes:
		return "BLOB"
	default:
		return "TEXT"
	}
}

func (d *MysqlDialect) ClassifyType(catalogType string) TypeClass {
	switch strings.ToLower(strings.TrimSpace(catalogType)) {
	case "tinyint", "smallint", "mediumint", "int", "integer", "bigint":
		return ClassInteger
	case "decimal", "numeric", "float", "double", "real":
		return ClassFloat
	case "bool", "boolean":
		return ClassBoolean
	case "datetime", "timestamp", "time":
		return ClassTimestamp
	case "date":
		return ClassDate
	case "char", "varchar", "text", "tinytext", "mediumtext", "longtext", "enum", "set":
		return ClassText
	case "json":
		return ClassJSON
	case "binary", "varbinary", "blob", "tinyblob", "mediumblob", "longblob":
		return ClassBinary
	default:
		return ClassOther
	}
}

func (d *MysqlDialect) HealthQuery() string {
	return "SELECT 1"
}
