package sqlite_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/fcv/porteria/internal/db"
)

// openTestDB returns a migrated in-memory SQLite database private to t.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := "test_" + strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	conn, err := db.OpenSQLiteMemory(context.Background(), name)
	if err != nil {
		t.Fatalf("openTestDB: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// newTestWriter returns a db.Worker backed by conn, closed with the test.
func newTestWriter(t *testing.T, conn *sql.DB) *db.Worker {
	t.Helper()

	w := db.NewWorker(conn)
	t.Cleanup(func() { w.Close() })
	return w
}
