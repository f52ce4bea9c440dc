package store_test

import (
	"strings"
	"testing"

	"tablesink/internal/store"
)

func TestConfigDSN(t *testing.T) {
	cfg := store.Config{
		Host: "db", Port: 5432, Database: "app", User: "u", Password: "p",
	}

	cases := []struct {
		driver string
		want   []string
	}{
		{"postgres", []string{"host=db", "port=5432", "dbname=app", "sslmode=disable"}},
		{"", []string{"host=db", "dbname=app"}},
		{"mysql", []string{"u:p@tcp(db:5432)/app", "parseTime=true"}},
		{"sqlserver", []string{"sqlserver://", "database=app"}},
		{"oracle", []string{"oracle://u:p@db:5432/app"}},
	}
	for _, c := range cases {
		cfg.Driver = c.driver
		dsn := cfg.DSN()
		for _, frag := range c.want {
			if !strings.Contains(dsn, frag) {
				t.Errorf("driver %q: dsn %q missing %q", c.driver, dsn, frag)
			}
		}
	}
}

func TestConfigDriverName(t *testing.T) {
	cases := map[string]string{
		"":          "postgres",
		"postgres":  "postgres",
		"mysql":     "mysql",
		"mssql":     "sqlserver",
		"sqlserver": "sqlserver",
		"oracle":    "oracle",
	}
	for driver, want := range cases {
		cfg := store.Config{Driver: driver}
		if got := cfg.DriverName(); got != want {
			t.Errorf("DriverName(%q) = %q, want %q", driver, got, want)
		}
	}
}
