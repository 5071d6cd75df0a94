package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const pingTimeout = 5 * time.Second

// Pool limits applied to a freshly opened handle. Zero lifetime keeps connections forever.
type pool struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

var (
	postgresPool = pool{maxOpen: 10, maxIdle: 10, maxLifetime: 30 * time.Minute}

	// SQLite allows a single writer, and ":memory:" databases live only as long
	// as their connection, so one long-lived connection serves everything.
	sqlitePool = pool{maxOpen: 1, maxIdle: 1}
)

// Open connects to Postgres through the pgx stdlib driver.
func Open(databaseURL string) (*sql.DB, error) {
	return open("pgx", databaseURL, "postgres", postgresPool)
}

// OpenSQLite opens a SQLite database file (or ":memory:") through the pure-Go modernc driver.
func OpenSQLite(path string) (*sql.DB, error) {
	return open("sqlite", path, fmt.Sprintf("sqlite %q", path), sqlitePool)
}

func open(driver, dsn, label string, p pool) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", label, err)
	}

	conn.SetMaxOpenConns(p.maxOpen)
	conn.SetMaxIdleConns(p.maxIdle)
	conn.SetConnMaxLifetime(p.maxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", label, err)
	}

	return conn, nil
}
