package dialect

import (
	"fmt"
	"strings"

	"tablesink/internal/dataset"
)

// MSSQLDialect targets SQL Server. Renames go through sp_rename, which takes
// the object's current qualified name and an unqualified new name.
type MSSQLDialect struct{}

func (d *MSSQLDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MSSQLDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 ORDER BY ORDINAL_POSITION`
}

func (d *MSSQLDialect) TableExistsQuery() string {
	return `SELECT 1 FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2`
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (d *MSSQLDialect) Qualify(namespace, table string) string {
	return d.QuoteIdent(namespace) + "." + d.QuoteIdent(table)
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) CreateSchemaSQL(namespace string) string {
	return fmt.Sprintf("IF SCHEMA_ID(N'%s') IS NULL EXEC(N'CREATE SCHEMA %s')",
		strings.ReplaceAll(namespace, "'", "''"), d.QuoteIdent(namespace))
}

func (d *MSSQLDialect) CreateTableSQL(namespace, table string, cols []ColumnSpec) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = d.QuoteIdent(c.Name) + " " + c.SQLType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.Qualify(namespace, table), strings.Join(defs, ", "))
}

func (d *MSSQLDialect) AddColumnSQL(namespace, table, column, sqlType string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s %s",
		d.Qualify(namespace, table), d.QuoteIdent(column), sqlType)
}

func (d *MSSQLDialect) CloneTableSQL(namespace, shadow, source string) string {
	// SELECT INTO clones column definitions only; SQL Server has no LIKE
	// clause, so indexes are not carried into the shadow.
	return fmt.Sprintf("SELECT * INTO %s FROM %s WHERE 1 = 0",
		d.Qualify(namespace, shadow), d.Qualify(namespace, source))
}

func (d *MSSQLDialect) RenameTableSQL(namespace, from, to string) string {
	return fmt.Sprintf("EXEC sp_rename N'%s', N'%s'",
		strings.ReplaceAll(d.Qualify(namespace, from), "'", "''"),
		strings.ReplaceAll(to, "'", "''"))
}

func (d *MSSQLDialect) DropTableSQL(namespace, table string) string {
	return fmt.Sprintf("DROP TABLE %s", d.Qualify(namespace, table))
}

func (d *MSSQLDialect) CreateBackupTableSQL(namespace, backup, source string) string {
	return fmt.Sprintf(
		"SELECT s.*, CAST(NULL AS DATETIMEOFFSET) AS backup_timestamp, CAST(NULL AS INT) AS backup_year, CAST(NULL AS INT) AS backup_week INTO %s FROM %s s WHERE 1 = 0",
		d.Qualify(namespace, backup), d.Qualify(namespace, source))
}

func (d *MSSQLDialect) BackupIndexSQL(namespace, backup string) []string {
	q := d.Qualify(namespace, backup)
	return []string{
		fmt.Sprintf("CREATE INDEX %s ON %s (backup_year, backup_week)",
			d.QuoteIdent("idx_"+backup+"_year_week"), q),
		fmt.Sprintf("CREATE INDEX %s ON %s (backup_timestamp)",
			d.QuoteIdent("idx_"+backup+"_timestamp"), q),
	}
}

func (d *MSSQLDialect) BackupInsertSQL(namespace, backup, source string) string {
	return fmt.Sprintf("INSERT INTO %s SELECT s.*, @p1, @p2, @p3 FROM %s s",
		d.Qualify(namespace, backup), d.Qualify(namespace, source))
}

func (d *MSSQLDialect) InsertSQL(namespace, table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Qualify(namespace, table), strings.Join(quoted, ", "), vals)
}

func (d *MSSQLDialect) SelectAllSQL(namespace, table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.Qualify(namespace, table))
}

func (d *MSSQLDialect) TypeName(k dataset.Kind) string {
	switch k {
	case dataset.Int:
		return "BIGINT"
	case dataset.Float:
		return "FLOAT"
	case dataset.Bool:
		return "BIT"
	case dataset.Time:
		return "DATETIME2"
	case dataset.JSON:
		return "NVARCHAR(MAX)"
	case dataset.Bytes:
		return "VARBINARY(MAX)"
	default:
		return "NVARCHAR(MAX)"
	}
}

func (d *MSSQLDialect) ClassifyType(catalogType string) TypeClass {
	switch strings.ToLower(strings.TrimSpace(catalogType)) {
	case "tinyint", "smallint", "int", "bigint":
		return ClassInteger
	case "decimal", "numeric", "money", "smallmoney", "float", "real":
		return ClassFloat
	case "bit":
		return ClassBoolean
	case "datetime", "datetime2", "smalldatetime", "datetimeoffset", "time":
		return ClassTimestamp
	case "date":
		return ClassDate
	case "char", "nchar", "varchar", "nvarchar", "text", "ntext":
		return ClassText
	case "binary", "varbinary", "image":
		return ClassBinary
	default:
		return ClassOther
	}
}

func (d *MSSQLDialect) HealthQuery() string {
	return "SELECT 1"
}
