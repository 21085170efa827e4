package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fcv/porteria/internal/porteria/model"
)

func (s *Store) RecordAccessLog(ctx context.Context, rec model.AccessLog) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = s.now().UTC()
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = rec.RecordedAt
	}

	var allowed int
	if rec.Allowed {
		allowed = 1
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO access_logs(
  id, person_id, organization_id, rut, direction,
  allowed, status, reason, gate, occurred_at_ms, recorded_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
			rec.ID.String(), nullableID(rec.PersonID), nullableID(rec.OrganizationID), rec.RUT, string(rec.Direction),
			allowed, string(rec.Status), rec.Reason, rec.Gate,
			rec.OccurredAt.UTC().UnixMilli(), rec.RecordedAt.UTC().UnixMilli(),
		); err != nil {
			return fmt.Errorf("RecordAccessLog insert: %w", err)
		}
		return nil
	})
}

func (s *Store) ListAccessLogs(ctx context.Context, f model.AccessLogFilter) ([]model.AccessLog, error) {
	var (
		where []string
		args  []any
	)
	if f.RUT != "" {
		where = append(where, "rut = ?")
		args = append(args, f.RUT)
	}
	if f.Direction != "" {
		where = append(where, "direction = ?")
		args = append(args, string(f.Direction))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = model.DefaultAccessLogLimit
	}
	args = append(args, limit)

	q := `
SELECT id, person_id, organization_id, rut, direction, allowed, status, reason, gate,
       occurred_at_ms, recorded_at_ms
FROM access_logs`
	if len(where) > 0 {
		q += "\nWHERE " + strings.Join(where, " AND ")
	}
	q += "\nORDER BY occurred_at_ms DESC, rowid DESC\nLIMIT ?;"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("ListAccessLogs: %w", err)
	}
	defer rows.Close()

	var out []model.AccessLog
	for rows.Next() {
		var (
			l                      model.AccessLog
			id                     string
			personID, orgID        sql.NullInt64
			allowed                int
			occurredMs, recordedMs int64
		)
		if err := rows.Scan(&id, &personID, &orgID, &l.RUT, &l.Direction, &allowed, &l.Status, &l.Reason, &l.Gate, &occurredMs, &recordedMs); err != nil {
			return nil, fmt.Errorf("ListAccessLogs scan: %w", err)
		}
		if l.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("access log id %q: %w", id, err)
		}
		l.PersonID = scanID(personID)
		l.OrganizationID = scanID(orgID)
		l.Allowed = allowed == 1
		l.OccurredAt = time.UnixMilli(occurredMs).UTC()
		l.RecordedAt = time.UnixMilli(recordedMs).UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM access_logs WHERE occurred_at_ms < ?;`, cutoff.UTC().UnixMilli())
		if err != nil {
			return fmt.Errorf("PruneOlderThan: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}
