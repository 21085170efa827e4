package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fcv/porteria/internal/lib/requestcontext"
	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/lib/sl"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/rut"
	"github.com/fcv/porteria/internal/porteria/store"
)

const MaxAccessLogLimit = 500

var ErrInvalidDirection = fmt.Errorf("direction must be %q or %q: %w", model.DirectionEntry, model.DirectionExit, sentinel.ErrInvalidInput)

// RecordRequest is one event reported by a gate terminal.
type RecordRequest struct {
	RUT       string
	Direction model.Direction
	Gate      string
	// OccurredAt is when the terminal saw the person; zero means now.
	OccurredAt time.Time
}

// Recorded is the stored log row and, for entries, the decision that
// produced it. Exits carry an allowed decision with ReasonExitRecorded.
type Recorded struct {
	Log      model.AccessLog
	Decision model.Decision
}

// AccessLogService records entry and exit events. Entries are decided by the
// evaluator; exits are recorded for any registered person.
type AccessLogService struct {
	evaluator Evaluator
	persons   store.PersonStore
	logs      store.AccessLogStore
	log       *slog.Logger
	metrics   *metrics.Metrics
}

// NewAccessLogService returns a service writing to logs. A nil logger falls
// back to slog.Default and nil metrics are not recorded.
func NewAccessLogService(e Evaluator, persons store.PersonStore, logs store.AccessLogStore, log *slog.Logger, m *metrics.Metrics) *AccessLogService {
	if log == nil {
		log = slog.Default()
	}
	return &AccessLogService{
		evaluator: e,
		persons:   persons,
		logs:      logs,
		log:       log.With(sl.Module("service.access_log")),
		metrics:   m,
	}
}

func (s *AccessLogService) Record(ctx context.Context, req RecordRequest) (Recorded, error) {
	if !req.Direction.Valid() {
		return Recorded{}, ErrInvalidDirection
	}

	recordedAt := requestcontext.Now(ctx).UTC()
	occurredAt := recordedAt
	if !req.OccurredAt.IsZero() {
		occurredAt = req.OccurredAt.UTC()
		ctx = requestcontext.WithTime(ctx, occurredAt)
	}

	var (
		d   model.Decision
		err error
	)
	if req.Direction == model.DirectionEntry {
		d, err = s.evaluator.Evaluate(ctx, req.RUT)
	} else {
		d, err = s.exit(ctx, req.RUT)
	}
	if err != nil {
		return Recorded{}, err
	}

	rec := model.AccessLog{
		ID:         uuid.New(),
		RUT:        rut.Normalize(req.RUT),
		Direction:  req.Direction,
		Allowed:    d.Allowed,
		Status:     d.Status,
		Reason:     d.Reason,
		Gate:       req.Gate,
		OccurredAt: occurredAt,
		RecordedAt: recordedAt,
	}
	if d.Person != nil {
		rec.PersonID = &d.Person.ID
	}
	if d.Organization != nil {
		rec.OrganizationID = &d.Organization.ID
	}

	if err := s.logs.RecordAccessLog(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "record access log failed", slog.String("id", rec.ID.String()), sl.Err(err))
		return Recorded{}, fmt.Errorf("record access log: %w", err)
	}
	s.metrics.IncrementAccessLogged(string(rec.Direction), string(rec.Status))
	s.log.InfoContext(ctx, "access recorded",
		slog.String("id", rec.ID.String()),
		sl.Secret("rut", rec.RUT),
		slog.String("direction", string(rec.Direction)),
		slog.String("status", string(rec.Status)),
		slog.String("gate", rec.Gate),
	)
	return Recorded{Log: rec, Decision: d}, nil
}

// exit never consults exit rules: any registered person may leave.
func (s *AccessLogService) exit(ctx context.Context, raw string) (model.Decision, error) {
	p, err := s.persons.FindPersonByRUT(ctx, rut.Normalize(raw))
	if errors.Is(err, sentinel.ErrNotFound) {
		return Unregistered(), nil
	}
	if err != nil {
		return model.Decision{}, fmt.Errorf("find person: %w", err)
	}
	return model.Decision{
		Allowed: true,
		Status:  model.StatusPermitido,
		Reason:  model.ReasonExitRecorded,
		Person:  model.SummarizePerson(p),
	}, nil
}

// List returns recent events, newest first. The rut filter is normalized
// and limit is clamped to MaxAccessLogLimit.
func (s *AccessLogService) List(ctx context.Context, f model.AccessLogFilter) ([]model.AccessLog, error) {
	if f.Direction != "" && !f.Direction.Valid() {
		return nil, ErrInvalidDirection
	}
	if f.RUT != "" {
		f.RUT = rut.Normalize(f.RUT)
		if f.RUT == "" {
			return []model.AccessLog{}, nil
		}
	}
	switch {
	case f.Limit <= 0:
		f.Limit = model.DefaultAccessLogLimit
	case f.Limit > MaxAccessLogLimit:
		f.Limit = MaxAccessLogLimit
	}
	logs, err := s.logs.ListAccessLogs(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list access logs: %w", err)
	}
	return logs, nil
}
