package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fcv/porteria/internal/porteria/model"
	sqlitestore "github.com/fcv/porteria/internal/porteria/store/sqlite"
)

func TestRecordAccessLog_ColumnsCorrect(t *testing.T) {
	conn := openTestDB(t)
	st := sqlitestore.New(conn, newTestWriter(t, conn))
	ctx := context.Background()

	occurred := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	id := uuid.New()
	err := st.RecordAccessLog(ctx, model.AccessLog{
		ID:         id,
		RUT:        "99999999",
		Direction:  model.DirectionEntry,
		Allowed:    false,
		Status:     model.StatusDenegado,
		Reason:     model.ReasonPersonNotRegistered,
		Gate:       "sur",
		OccurredAt: occurred,
		RecordedAt: occurred.Add(5 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("RecordAccessLog: %v", err)
	}

	var (
		personID   sql.NullInt64
		allowed    int
		status     string
		reason     string
		occurredMs int64
		recordedMs int64
	)
	err = conn.QueryRowContext(ctx, `
SELECT person_id, allowed, status, reason, occurred_at_ms, recorded_at_ms
FROM access_logs WHERE id = ?`, id.String(),
	).Scan(&personID, &allowed, &status, &reason, &occurredMs, &recordedMs)
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if personID.Valid {
		t.Errorf("expected NULL person_id, got %v", personID.Int64)
	}
	if allowed != 0 {
		t.Errorf("expected allowed=0, got %d", allowed)
	}
	if status != "denegado" || reason != "Persona no registrada" {
		t.Errorf("unexpected status/reason %q/%q", status, reason)
	}
	if occurredMs != occurred.UnixMilli() {
		t.Errorf("expected occurred_at_ms=%d, got %d", occurred.UnixMilli(), occurredMs)
	}
	if recordedMs != occurred.Add(5*time.Millisecond).UnixMilli() {
		t.Errorf("unexpected recorded_at_ms %d", recordedMs)
	}
}

func TestRecordAccessLog_FillsDefaults(t *testing.T) {
	conn := openTestDB(t)
	st := sqlitestore.New(conn, newTestWriter(t, conn))
	ctx := context.Background()

	err := st.RecordAccessLog(ctx, model.AccessLog{
		RUT:       "1",
		Direction: model.DirectionExit,
		Status:    model.StatusPermitido,
		Reason:    model.ReasonExitRecorded,
	})
	if err != nil {
		t.Fatalf("RecordAccessLog: %v", err)
	}

	logs, err := st.ListAccessLogs(ctx, model.AccessLogFilter{})
	if err != nil {
		t.Fatalf("ListAccessLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if logs[0].OccurredAt.IsZero() || !logs[0].OccurredAt.Equal(logs[0].RecordedAt) {
		t.Errorf("expected occurred_at to default to recorded_at, got %v / %v", logs[0].OccurredAt, logs[0].RecordedAt)
	}
}

func TestRecordAccessLog_RejectsBadDirection(t *testing.T) {
	conn := openTestDB(t)
	st := sqlitestore.New(conn, newTestWriter(t, conn))

	err := st.RecordAccessLog(context.Background(), model.AccessLog{
		RUT:       "1",
		Direction: "sideways",
		Status:    model.StatusDenegado,
	})
	if err == nil {
		t.Fatal("expected CHECK constraint failure")
	}
}

func TestPruneOlderThan_Boundary(t *testing.T) {
	conn := openTestDB(t)
	st := sqlitestore.New(conn, newTestWriter(t, conn))
	ctx := context.Background()

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{cutoff.Add(-time.Millisecond), cutoff, cutoff.Add(time.Hour)} {
		if err := st.RecordAccessLog(ctx, model.AccessLog{
			RUT: "1", Direction: model.DirectionEntry, Status: model.StatusPermitido, OccurredAt: at, RecordedAt: at,
		}); err != nil {
			t.Fatalf("RecordAccessLog: %v", err)
		}
	}

	deleted, err := st.PruneOlderThan(ctx, cutoff)
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 pruned, got %d", deleted)
	}
}
