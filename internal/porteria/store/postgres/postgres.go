// Package postgres implements store.Store on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/policy"
	"github.com/fcv/porteria/internal/porteria/store"
)

var _ store.Store = (*Store)(nil)

// pgForeignKeyViolation is SQLSTATE 23503.
const pgForeignKeyViolation = "23503"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func mapErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%s: %s: %w", op, pqErr.Constraint, sentinel.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) FindPersonByRUT(ctx context.Context, rut string) (model.Person, error) {
	var p model.Person
	err := s.db.QueryRowContext(ctx, `
SELECT id, rut, name, status, contact FROM persons WHERE rut = $1`, rut,
	).Scan(&p.ID, &p.RUT, &p.Name, &p.Status, &p.Contact)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Person{}, fmt.Errorf("person %q: %w", rut, sentinel.ErrNotFound)
	}
	if err != nil {
		return model.Person{}, mapErr("find person", err)
	}
	return p, nil
}

func (s *Store) ActiveMembershipsOf(ctx context.Context, personID int64, asOf time.Time) ([]model.MembershipWithOrg, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT m.id, m.person_id, m.organization_id, m.role,
       to_char(m.start_date, 'YYYY-MM-DD'), to_char(m.end_date, 'YYYY-MM-DD'),
       o.id, o.name, o.type, o.access_rule_preset
FROM memberships m
JOIN organizations o ON o.id = m.organization_id
WHERE m.person_id = $1
  AND (m.start_date IS NULL OR m.start_date <= $2::date)
  AND (m.end_date IS NULL OR m.end_date >= $2::date)
ORDER BY m.id`, personID, model.DateOf(asOf).String())
	if err != nil {
		return nil, mapErr("active memberships", err)
	}
	defer rows.Close()

	var out []model.MembershipWithOrg
	for rows.Next() {
		var (
			mo         model.MembershipWithOrg
			start, end sql.NullString
		)
		if err := rows.Scan(
			&mo.Membership.ID, &mo.Membership.PersonID, &mo.Membership.OrganizationID, &mo.Membership.Role, &start, &end,
			&mo.Organization.ID, &mo.Organization.Name, &mo.Organization.Type, &mo.Organization.AccessRulePreset,
		); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		if mo.Membership.StartDate, err = parseNullDate(start); err != nil {
			return nil, err
		}
		if mo.Membership.EndDate, err = parseNullDate(end); err != nil {
			return nil, err
		}
		out = append(out, mo)
	}
	return out, rows.Err()
}

func (s *Store) EnrolledCoursesOf(ctx context.Context, personID int64) ([]model.Course, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT c.id, c.organization_id, c.name, c.entry_tolerance
FROM course_enrollments e
JOIN courses c ON c.id = e.course_id
WHERE e.person_id = $1
ORDER BY e.id`, personID)
	if err != nil {
		return nil, mapErr("enrolled courses", err)
	}
	defer rows.Close()

	var out []model.Course
	for rows.Next() {
		var (
			c   model.Course
			tol sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &tol); err != nil {
			return nil, fmt.Errorf("scan enrolled course: %w", err)
		}
		if tol.Valid {
			t, err := policy.ParseTolerance(tol.String)
			if err != nil {
				return nil, fmt.Errorf("course %d: %w", c.ID, err)
			}
			c.EntryTolerance = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CourseSchedulesOf(ctx context.Context, personID int64) ([]model.CourseSchedule, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT c.id, c.organization_id, c.name, c.entry_tolerance,
       sc.id, sc.schedulable_type, sc.schedulable_id, sc.day_of_week,
       to_char(sc.start_time, 'HH24:MI:SS'), to_char(sc.end_time, 'HH24:MI:SS')
FROM course_enrollments e
JOIN courses c ON c.id = e.course_id
JOIN schedules sc ON sc.schedulable_type = 'course' AND sc.schedulable_id = c.id
WHERE e.person_id = $1
ORDER BY e.id, sc.id`, personID)
	if err != nil {
		return nil, mapErr("course schedules", err)
	}
	defer rows.Close()

	var out []model.CourseSchedule
	for rows.Next() {
		var (
			cs         model.CourseSchedule
			tol        sql.NullString
			day        int
			start, end string
		)
		if err := rows.Scan(
			&cs.Course.ID, &cs.Course.OrganizationID, &cs.Course.Name, &tol,
			&cs.Schedule.ID, &cs.Schedule.SchedulableType, &cs.Schedule.SchedulableID, &day, &start, &end,
		); err != nil {
			return nil, fmt.Errorf("scan course schedule: %w", err)
		}
		if tol.Valid {
			t, err := policy.ParseTolerance(tol.String)
			if err != nil {
				return nil, fmt.Errorf("course %d: %w", cs.Course.ID, err)
			}
			cs.Course.EntryTolerance = &t
		}
		cs.Schedule.DayOfWeek = time.Weekday(day)
		if cs.Schedule.Start, err = model.ParseClock(start); err != nil {
			return nil, err
		}
		if cs.Schedule.End, err = model.ParseClock(end); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (s *Store) UpsertPerson(ctx context.Context, person model.Person) (model.Person, error) {
	if person.RUT == "" {
		return model.Person{}, fmt.Errorf("person rut: %w", sentinel.ErrInvalidInput)
	}
	if person.Status == "" {
		person.Status = model.PersonStatusActive
	}
	err := s.db.QueryRowContext(ctx, `
INSERT INTO persons(rut, name, status, contact)
VALUES ($1, $2, $3, $4)
ON CONFLICT (rut) DO UPDATE SET
  name = EXCLUDED.name,
  status = EXCLUDED.status,
  contact = EXCLUDED.contact,
  updated_at = now()
RETURNING id`, person.RUT, person.Name, person.Status, person.Contact).Scan(&person.ID)
	if err != nil {
		return model.Person{}, mapErr("upsert person", err)
	}
	return person, nil
}

func (s *Store) UpsertOrganization(ctx context.Context, org model.Organization) (model.Organization, error) {
	if org.Name == "" {
		return model.Organization{}, fmt.Errorf("organization name: %w", sentinel.ErrInvalidInput)
	}
	if org.Type == "" {
		org.Type = model.OrganizationInternal
	}
	err := s.db.QueryRowContext(ctx, `
INSERT INTO organizations(name, type, access_rule_preset)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET
  type = EXCLUDED.type,
  access_rule_preset = EXCLUDED.access_rule_preset,
  updated_at = now()
RETURNING id`, org.Name, string(org.Type), org.AccessRulePreset).Scan(&org.ID)
	if err != nil {
		return model.Organization{}, mapErr("upsert organization", err)
	}
	return org, nil
}

func (s *Store) AddMembership(ctx context.Context, membership model.Membership) (model.Membership, error) {
	err := s.db.QueryRowContext(ctx, `
INSERT INTO memberships(person_id, organization_id, role, start_date, end_date)
VALUES ($1, $2, $3, $4::date, $5::date)
RETURNING id`,
		membership.PersonID, membership.OrganizationID, string(membership.Role),
		nullDate(membership.StartDate), nullDate(membership.EndDate),
	).Scan(&membership.ID)
	if err != nil {
		return model.Membership{}, mapErr("add membership", err)
	}
	return membership, nil
}

func (s *Store) AddCourse(ctx context.Context, course model.Course) (model.Course, error) {
	var tol sql.NullString
	if course.EntryTolerance != nil {
		tol = sql.NullString{String: course.EntryTolerance.String(), Valid: true}
	}
	err := s.db.QueryRowContext(ctx, `
INSERT INTO courses(organization_id, name, entry_tolerance)
VALUES ($1, $2, $3)
RETURNING id`, course.OrganizationID, course.Name, tol).Scan(&course.ID)
	if err != nil {
		return model.Course{}, mapErr("add course", err)
	}
	return course, nil
}

func (s *Store) Enroll(ctx context.Context, personID, courseID int64) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO course_enrollments(person_id, course_id)
VALUES ($1, $2)
ON CONFLICT (person_id, course_id) DO NOTHING`, personID, courseID)
	if err != nil {
		return mapErr("enroll", err)
	}
	return nil
}

func (s *Store) AddSchedule(ctx context.Context, schedule model.Schedule) (model.Schedule, error) {
	if schedule.End < schedule.Start {
		return model.Schedule{}, fmt.Errorf("schedule ends before it starts: %w", sentinel.ErrInvalidInput)
	}
	err := s.db.QueryRowContext(ctx, `
INSERT INTO schedules(schedulable_type, schedulable_id, day_of_week, start_time, end_time)
VALUES ($1, $2, $3, $4::time, $5::time)
RETURNING id`,
		schedule.SchedulableType, schedule.SchedulableID, int(schedule.DayOfWeek),
		schedule.Start.String(), schedule.End.String(),
	).Scan(&schedule.ID)
	if err != nil {
		return model.Schedule{}, mapErr("add schedule", err)
	}
	return schedule, nil
}

func (s *Store) RecordAccessLog(ctx context.Context, rec model.AccessLog) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = rec.RecordedAt
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO access_logs(
  id, person_id, organization_id, rut, direction,
  allowed, status, reason, gate, occurred_at, recorded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, nullID(rec.PersonID), nullID(rec.OrganizationID), rec.RUT, string(rec.Direction),
		rec.Allowed, string(rec.Status), rec.Reason, rec.Gate, rec.OccurredAt.UTC(), rec.RecordedAt.UTC(),
	)
	if err != nil {
		return mapErr("record access log", err)
	}
	return nil
}

func (s *Store) ListAccessLogs(ctx context.Context, f model.AccessLogFilter) ([]model.AccessLog, error) {
	var (
		where []string
		args  []any
	)
	if f.RUT != "" {
		args = append(args, f.RUT)
		where = append(where, "rut = $"+strconv.Itoa(len(args)))
	}
	if f.Direction != "" {
		args = append(args, string(f.Direction))
		where = append(where, "direction = $"+strconv.Itoa(len(args)))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = model.DefaultAccessLogLimit
	}
	args = append(args, limit)

	q := `SELECT id, person_id, organization_id, rut, direction, allowed, status, reason, gate, occurred_at, recorded_at
FROM access_logs`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY occurred_at DESC, seq DESC LIMIT $" + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapErr("list access logs", err)
	}
	defer rows.Close()

	var out []model.AccessLog
	for rows.Next() {
		var (
			l               model.AccessLog
			personID, orgID sql.NullInt64
		)
		if err := rows.Scan(&l.ID, &personID, &orgID, &l.RUT, &l.Direction, &l.Allowed, &l.Status, &l.Reason, &l.Gate, &l.OccurredAt, &l.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan access log: %w", err)
		}
		if personID.Valid {
			l.PersonID = &personID.Int64
		}
		if orgID.Valid {
			l.OrganizationID = &orgID.Int64
		}
		l.OccurredAt = l.OccurredAt.UTC()
		l.RecordedAt = l.RecordedAt.UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM access_logs WHERE occurred_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, mapErr("prune access logs", err)
	}
	return res.RowsAffected()
}

func parseNullDate(ns sql.NullString) (*model.Date, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := model.ParseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nullDate(d *model.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
