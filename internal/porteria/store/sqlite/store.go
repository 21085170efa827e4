// Package sqlite implements store.Store on modernc.org/sqlite. Reads use the
// pool directly; every write is funnelled through a db.Worker.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/fcv/porteria/internal/db"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/policy"
	"github.com/fcv/porteria/internal/porteria/store"
)

var _ store.Store = (*Store)(nil)

// Store reads through db directly and sends every write to writer.
type Store struct {
	db     *sql.DB
	writer *dbpkg.Worker
	now    func() time.Time
}

func New(db *sql.DB, writer *dbpkg.Worker) *Store {
	return &Store{db: db, writer: writer, now: time.Now}
}

func nullableDate(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanDate(ns sql.NullString) (*model.Date, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := model.ParseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nullableTolerance(t *policy.Tolerance) any {
	if t == nil {
		return nil
	}
	return t.String()
}

func scanTolerance(ns sql.NullString) (*policy.Tolerance, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := policy.ParseTolerance(ns.String)
	if err != nil {
		return nil, fmt.Errorf("entry_tolerance: %w", err)
	}
	return &t, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func scanID(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
