// Package store owns the connection to the relational store: a per-instance
// lazily established *sql.DB that is transparently re-established on next use
// when the session has died, plus the error taxonomy shared by the ingestion
// and backup services.
package store

import (
	"database/sql"
	"fmt"
	"net/url"
	"sync"
)

// Config describes how to reach the relational store. Driver is one of
// "postgres", "mysql", "sqlserver", "oracle".
type Config struct {
	Driver   string
	Host     string
	Port     int
	Database string
	User     string
	Password string

	// Namespace is the schema all managed tables live in.
	Namespace string
}

// DSN renders the driver-specific connection string.
func (c Config) DSN() string {
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			c.User, c.Password, c.Host, c.Port, c.Database)
	case "sqlserver", "mssql":
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			RawQuery: url.Values{"database": {c.Database}}.Encode(),
		}
		return u.String()
	case "oracle":
		return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
			url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.Database)
	default: // postgres
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.Database)
	}
}

// DriverName normalizes the configured driver to the database/sql driver name.
func (c Config) DriverName() string {
	switch c.Driver {
	case "mssql", "sqlserver":
		return "sqlserver"
	case "":
		return "postgres"
	default:
		return c.Driver
	}
}

// Client holds one live session against the store, opened on first use and
// reused across calls. A dead session is closed and reopened on the next DB
// call. Safe for concurrent use.
type Client struct {
	cfg Config

	mu sync.Mutex
	db *sql.DB
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// DB returns a live handle, establishing or re-establishing the session as
// needed. Failures are reported as connection-kind errors.
func (c *Client) DB() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		if err := c.db.Ping(); err == nil {
			return c.db, nil
		}
		// Session died underneath us; drop it and reconnect.
		c.db.Close()
		c.db = nil
	}

	db, err := sql.Open(c.cfg.DriverName(), c.cfg.DSN())
	if err != nil {
		return nil, ConnectionErr(fmt.Errorf("open %s: %w", c.cfg.DriverName(), err))
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, ConnectionErr(fmt.Errorf("ping %s: %w", c.cfg.DriverName(), err))
	}
	c.db = db
	return c.db, nil
}

// Close releases the session if one is open.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Config returns the client's store configuration.
func (c *Client) Config() Config { return c.cfg }
