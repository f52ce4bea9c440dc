package dialect

import (
	"fmt"
	"strings"

	"tablesink/internal/dataset"
)

// OracleDialect works against the connected user's own schema: USER_TABLES
// and USER_TAB_COLUMNS ignore the namespace argument, and RENAME only accepts
// unqualified names. The namespace is still bound into catalog queries via a
// dummy clause so every dialect shares one calling convention.
type OracleDialect struct{}

func (d *OracleDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM USER_TABLES WHERE :1 IS NOT NULL ORDER BY TABLE_NAME`
}

func (d *OracleDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, DATA_TYPE, NULLABLE FROM USER_TAB_COLUMNS WHERE :1 IS NOT NULL AND TABLE_NAME = UPPER(:2) ORDER BY COLUMN_ID`
}

func (d *OracleDialect) TableExistsQuery() string {
	return `SELECT 1 FROM USER_TABLES WHERE :1 IS NOT NULL AND TABLE_NAME = UPPER(:2)`
}

func (d *OracleDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(strings.ToUpper(name), `"`, `""`) + `"`
}

func (d *OracleDialect) Qualify(namespace, table string) string {
	// Tables live in the connected user's schema.
	return d.QuoteIdent(table)
}

func (d *OracleDialect) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) CreateSchemaSQL(namespace string) string {
	// The user schema already exists; nothing to create.
	return ""
}

func (d *OracleDialect) CreateTableSQL(namespace, table string, cols []ColumnSpec) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = d.QuoteIdent(c.Name) + " " + c.SQLType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.Qualify(namespace, table), strings.Join(defs, ", "))
}

func (d *OracleDialect) AddColumnSQL(namespace, table, column, sqlType string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s %s",
		d.Qualify(namespace, table), d.QuoteIdent(column), sqlType)
}

func (d *OracleDialect) CloneTableSQL(namespace, shadow, source string) string {
	return fmt.Sprintf("CREATE TABLE %s AS SELECT * FROM %s WHERE 1 = 0",
		d.Qualify(namespace, shadow), d.Qualify(namespace, source))
}

func (d *OracleDialect) RenameTableSQL(namespace, from, to string) string {
	return fmt.Sprintf("RENAME %s TO %s", d.QuoteIdent(from), d.QuoteIdent(to))
}

func (d *OracleDialect) DropTableSQL(namespace, table string) string {
	return fmt.Sprintf("DROP TABLE %s", d.Qualify(namespace, table))
}

func (d *OracleDialect) CreateBackupTableSQL(namespace, backup, source string) string {
	return fmt.Sprintf(
		"CREATE TABLE %s AS SELECT s.*, CAST(NULL AS TIMESTAMP WITH TIME ZONE) AS backup_timestamp, CAST(NULL AS NUMBER(10)) AS backup_year, CAST(NULL AS NUMBER(10)) AS backup_week FROM %s s WHERE 1 = 0",
		d.Qualify(namespace, backup), d.Qualify(namespace, source))
}

func (d *OracleDialect) BackupIndexSQL(namespace, backup string) []string {
	q := d.Qualify(namespace, backup)
	return []string{
		fmt.Sprintf("CREATE INDEX %s ON %s (backup_year, backup_week)",
			d.QuoteIdent("idx_"+backup+"_yw"), q),
		fmt.Sprintf("CREATE INDEX %s ON %s (backup_timestamp)",
			d.QuoteIdent("idx_"+backup+"_ts"), q),
	}
}

func (d *OracleDialect) BackupInsertSQL(namespace, backup, source string) string {
	return fmt.Sprintf("INSERT INTO %s SELECT s.*, :1, :2, :3 FROM %s s",
		d.Qualify(namespace, backup), d.Qualify(namespace, source))
}

func (d *OracleDialect) InsertSQL(namespace, table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Qualify(namespace, table), strings.Join(quoted, ", "), vals)
}

func (d *OracleDialect) SelectAllSQL(namespace, table string) string {
	return fmt.Sprintf("SELECT * FROM %s", d.Qualify(namespace, table))
}

func (d *OracleDialect) TypeName(k dataset.Kind) string {
	switch k {
	case dataset.Int:
		return "NUMBER(19)"
	case dataset.Float:
		return "BINARY_DOUBLE"
	case dataset.Bool:
		return "NUMBER(1)"
	case dataset.Time:
		return "TIMESTAMP"
	case dataset.JSON:
		return "CLOB"
	case dataset.Bytes:
		return "BLOB"
	default:
		return "VARCHAR2(4000)"
	}
}

func (d *OracleDialect) ClassifyType(catalogType string) TypeClass {
	t := strings.ToUpper(strings.TrimSpace(catalogType))
	switch {
	// USER_TAB_COLUMNS.DATA_TYPE reports bare NUMBER regardless of
	// precision, so NUMBER(1) boolean columns reflect as integers; the
	// coercion engine maps bool values to 0/1 for them.
	case t == "INTEGER" || strings.HasPrefix(t, "NUMBER"):
		return ClassInteger
	case t == "FLOAT" || t == "BINARY_FLOAT" || t == "BINARY_DOUBLE":
		return ClassFloat
	case strings.HasPrefix(t, "TIMESTAMP"):
		return ClassTimestamp
	case t == "DATE":
		return ClassDate
	case t == "CHAR" || t == "NCHAR" || t == "VARCHAR2" || t == "NVARCHAR2" || t == "CLOB" || t == "NCLOB" || t == "LONG":
		return ClassText
	case t == "RAW" || t == "LONG RAW" || t == "BLOB":
		return ClassBinary
	default:
		return ClassOther
	}
}

func (d *OracleDialect) HealthQuery() string {
	return "SELECT 1 FROM DUAL"
}
