package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const pingTimeout = 3 * time.Second

// sqlitePragmas are applied to every connection:
// foreign keys on, WAL journal, NORMAL sync, 5s busy timeout.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"

const DefaultSQLitePath = "./data/porteria.db"

// OpenSQLite opens (creating if needed) the database file at path and applies
// migrations. SQLite allows one writer, so the pool is capped at a single
// connection and writes go through a Worker.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	return openSQLiteDSN(ctx, fmt.Sprintf("file:%s?%s", path, sqlitePragmas))
}

// OpenSQLiteMemory returns a private in-memory database named name. The
// shared cache keeps it alive while the pool holds its connection.
func OpenSQLiteMemory(ctx context.Context, name string) (*sql.DB, error) {
	return openSQLiteDSN(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared&%s", name, sqlitePragmas))
}

func openSQLiteDSN(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := ready(ctx, conn, SQLite); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// OpenPostgres connects with lib/pq and applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := ready(ctx, conn, Postgres); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func ready(ctx context.Context, conn *sql.DB, d Dialect) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	if err := Migrate(ctx, conn, d); err != nil {
		return err
	}
	return nil
}
