package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/porteria/model"
)

func (s *Store) FindPersonByRUT(ctx context.Context, rut string) (model.Person, error) {
	var p model.Person
	err := s.db.QueryRowContext(ctx, `
SELECT id, rut, name, status, contact FROM persons WHERE rut = ?;
`, rut).Scan(&p.ID, &p.RUT, &p.Name, &p.Status, &p.Contact)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Person{}, fmt.Errorf("person %q: %w", rut, sentinel.ErrNotFound)
	}
	if err != nil {
		return model.Person{}, fmt.Errorf("FindPersonByRUT: %w", err)
	}
	return p, nil
}

func (s *Store) ActiveMembershipsOf(ctx context.Context, personID int64, asOf time.Time) ([]model.MembershipWithOrg, error) {
	day := model.DateOf(asOf).String()
	rows, err := s.db.QueryContext(ctx, `
SELECT m.id, m.person_id, m.organization_id, m.role, m.start_date, m.end_date,
       o.id, o.name, o.type, o.access_rule_preset
FROM memberships m
JOIN organizations o ON o.id = m.organization_id
WHERE m.person_id = ?
  AND (m.start_date IS NULL OR m.start_date <= ?)
  AND (m.end_date IS NULL OR m.end_date >= ?)
ORDER BY m.id;
`, personID, day, day)
	if err != nil {
		return nil, fmt.Errorf("ActiveMembershipsOf: %w", err)
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
			return nil, fmt.Errorf("ActiveMembershipsOf scan: %w", err)
		}
		if mo.Membership.StartDate, err = scanDate(start); err != nil {
			return nil, fmt.Errorf("membership %d start_date: %w", mo.Membership.ID, err)
		}
		if mo.Membership.EndDate, err = scanDate(end); err != nil {
			return nil, fmt.Errorf("membership %d end_date: %w", mo.Membership.ID, err)
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
WHERE e.person_id = ?
ORDER BY e.id;
`, personID)
	if err != nil {
		return nil, fmt.Errorf("EnrolledCoursesOf: %w", err)
	}
	defer rows.Close()

	var out []model.Course
	for rows.Next() {
		var (
			c   model.Course
			tol sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &tol); err != nil {
			return nil, fmt.Errorf("EnrolledCoursesOf scan: %w", err)
		}
		if c.EntryTolerance, err = scanTolerance(tol); err != nil {
			return nil, fmt.Errorf("course %d: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CourseSchedulesOf(ctx context.Context, personID int64) ([]model.CourseSchedule, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT c.id, c.organization_id, c.name, c.entry_tolerance,
       sc.id, sc.schedulable_type, sc.schedulable_id, sc.day_of_week, sc.start_time, sc.end_time
FROM course_enrollments e
JOIN courses c ON c.id = e.course_id
JOIN schedules sc ON sc.schedulable_type = 'course' AND sc.schedulable_id = c.id
WHERE e.person_id = ?
ORDER BY e.id, sc.id;
`, personID)
	if err != nil {
		return nil, fmt.Errorf("CourseSchedulesOf: %w", err)
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
			return nil, fmt.Errorf("CourseSchedulesOf scan: %w", err)
		}
		if cs.Course.EntryTolerance, err = scanTolerance(tol); err != nil {
			return nil, fmt.Errorf("course %d: %w", cs.Course.ID, err)
		}
		cs.Schedule.DayOfWeek = time.Weekday(day)
		if cs.Schedule.Start, err = model.ParseClock(start); err != nil {
			return nil, fmt.Errorf("schedule %d start_time: %w", cs.Schedule.ID, err)
		}
		if cs.Schedule.End, err = model.ParseClock(end); err != nil {
			return nil, fmt.Errorf("schedule %d end_time: %w", cs.Schedule.ID, err)
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
	nowMs := s.now().UTC().UnixMilli()
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
INSERT INTO persons(rut, name, status, contact, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(rut) DO UPDATE SET
  name = excluded.name,
  status = excluded.status,
  contact = excluded.contact,
  updated_at_ms = excluded.updated_at_ms
RETURNING id;
`, person.RUT, person.Name, person.Status, person.Contact, nowMs, nowMs).Scan(&person.ID)
	})
	if err != nil {
		return model.Person{}, fmt.Errorf("UpsertPerson: %w", err)
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
	nowMs := s.now().UTC().UnixMilli()
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
INSERT INTO organizations(name, type, access_rule_preset, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  type = excluded.type,
  access_rule_preset = excluded.access_rule_preset,
  updated_at_ms = excluded.updated_at_ms
RETURNING id;
`, org.Name, org.Type, org.AccessRulePreset, nowMs, nowMs).Scan(&org.ID)
	})
	if err != nil {
		return model.Organization{}, fmt.Errorf("UpsertOrganization: %w", err)
	}
	return org, nil
}

func (s *Store) AddMembership(ctx context.Context, membership model.Membership) (model.Membership, error) {
	nowMs := s.now().UTC().UnixMilli()
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
INSERT INTO memberships(person_id, organization_id, role, start_date, end_date, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id;
`, membership.PersonID, membership.OrganizationID, membership.Role,
			nullableDate(membership.StartDate), nullableDate(membership.EndDate), nowMs,
		).Scan(&membership.ID)
	})
	if err != nil {
		return model.Membership{}, fmt.Errorf("AddMembership: %w", err)
	}
	return membership, nil
}

func (s *Store) AddCourse(ctx context.Context, course model.Course) (model.Course, error) {
	nowMs := s.now().UTC().UnixMilli()
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
INSERT INTO courses(organization_id, name, entry_tolerance, created_at_ms)
VALUES (?, ?, ?, ?)
RETURNING id;
`, course.OrganizationID, course.Name, nullableTolerance(course.EntryTolerance), nowMs).Scan(&course.ID)
	})
	if err != nil {
		return model.Course{}, fmt.Errorf("AddCourse: %w", err)
	}
	return course, nil
}

func (s *Store) Enroll(ctx context.Context, personID, courseID int64) error {
	nowMs := s.now().UTC().UnixMilli()
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO course_enrollments(person_id, course_id, enrolled_at_ms)
VALUES (?, ?, ?)
ON CONFLICT(person_id, course_id) DO NOTHING;
`, personID, courseID, nowMs); err != nil {
			return fmt.Errorf("Enroll: %w", err)
		}
		return nil
	})
}

func (s *Store) AddSchedule(ctx context.Context, schedule model.Schedule) (model.Schedule, error) {
	if schedule.End < schedule.Start {
		return model.Schedule{}, fmt.Errorf("schedule ends before it starts: %w", sentinel.ErrInvalidInput)
	}
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
INSERT INTO schedules(schedulable_type, schedulable_id, day_of_week, start_time, end_time)
VALUES (?, ?, ?, ?, ?)
RETURNING id;
`, schedule.SchedulableType, schedule.SchedulableID, int(schedule.DayOfWeek),
			schedule.Start.String(), schedule.End.String(),
		).Scan(&schedule.ID)
	})
	if err != nil {
		return model.Schedule{}, fmt.Errorf("AddSchedule: %w", err)
	}
	return schedule, nil
}
