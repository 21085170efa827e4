// Package storetest runs the same behavioural checks against every
// store.Store backend.
package storetest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/policy"
	"github.com/fcv/porteria/internal/porteria/store"
)

// Suite is embedded by backend tests. NewStore must return an empty store
// for every test.
type Suite struct {
	suite.Suite
	NewStore func() store.Store

	st  store.Store
	ctx context.Context
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.st = s.NewStore()
}

func datePtr(d model.Date) *model.Date { return &d }

func (s *Suite) person(rut, name string) model.Person {
	p, err := s.st.UpsertPerson(s.ctx, model.Person{RUT: rut, Name: name, Status: model.PersonStatusActive})
	s.Require().NoError(err)
	return p
}

func (s *Suite) org(name, preset string) model.Organization {
	o, err := s.st.UpsertOrganization(s.ctx, model.Organization{Name: name, Type: model.OrganizationInternal, AccessRulePreset: preset})
	s.Require().NoError(err)
	return o
}

func (s *Suite) TestFindPersonByRUT() {
	p := s.person("12345678k", "Ana Rojas")

	got, err := s.st.FindPersonByRUT(s.ctx, "12345678k")
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
	s.Equal("Ana Rojas", got.Name)

	_, err = s.st.FindPersonByRUT(s.ctx, "99999999")
	s.True(errors.Is(err, sentinel.ErrNotFound), "got %v", err)
}

func (s *Suite) TestUpsertPersonKeepsID() {
	first := s.person("11111111", "Before")
	second := s.person("11111111", "After")
	s.Equal(first.ID, second.ID)

	got, err := s.st.FindPersonByRUT(s.ctx, "11111111")
	s.Require().NoError(err)
	s.Equal("After", got.Name)
}

func (s *Suite) TestUpsertPersonDefaultsStatus() {
	p, err := s.st.UpsertPerson(s.ctx, model.Person{RUT: "13131313", Name: "Sin estado"})
	s.Require().NoError(err)
	s.Equal(model.PersonStatusActive, p.Status)

	got, err := s.st.FindPersonByRUT(s.ctx, "13131313")
	s.Require().NoError(err)
	s.Equal(model.PersonStatusActive, got.Status)
}

func (s *Suite) TestUpsertOrganizationKeepsID() {
	a := s.org("Facultad", "acceso_total")
	b := s.org("Facultad", "horario_estricto")
	s.Equal(a.ID, b.ID)
	s.Equal("horario_estricto", b.AccessRulePreset)
}

func (s *Suite) TestActiveMembershipsWindow() {
	p := s.person("22222222", "Luis")
	o := s.org("Escuela", "acceso_total")
	today := model.NewDate(2026, time.March, 10)

	add := func(start, end *model.Date) model.Membership {
		m, err := s.st.AddMembership(s.ctx, model.Membership{
			PersonID: p.ID, OrganizationID: o.ID, Role: model.RoleStudent,
			StartDate: start, EndDate: end,
		})
		s.Require().NoError(err)
		return m
	}
	open := add(nil, nil)
	endsToday := add(nil, datePtr(today))
	add(nil, datePtr(today.AddDays(-1)))
	startsToday := add(datePtr(today), nil)
	add(datePtr(today.AddDays(1)), nil)

	asOf := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	got, err := s.st.ActiveMembershipsOf(s.ctx, p.ID, asOf)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal(open.ID, got[0].Membership.ID)
	s.Equal(endsToday.ID, got[1].Membership.ID)
	s.Equal(startsToday.ID, got[2].Membership.ID)
	s.Equal(o.Name, got[0].Organization.Name)
	s.Equal("acceso_total", got[0].Organization.AccessRulePreset)
}

func (s *Suite) TestActiveMembershipsOtherPerson() {
	p := s.person("33333333", "Eva")
	other := s.person("44444444", "Tomas")
	o := s.org("Instituto", "acceso_total")
	_, err := s.st.AddMembership(s.ctx, model.Membership{PersonID: other.ID, OrganizationID: o.ID, Role: model.RoleStaff})
	s.Require().NoError(err)

	got, err := s.st.ActiveMembershipsOf(s.ctx, p.ID, time.Now())
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *Suite) TestAddMembershipUnknownPerson() {
	o := s.org("Nadie", "acceso_total")
	_, err := s.st.AddMembership(s.ctx, model.Membership{PersonID: 4242, OrganizationID: o.ID, Role: model.RoleStaff})
	s.Error(err)
}

func (s *Suite) TestCourseSchedules() {
	p := s.person("55555555", "Paz")
	o := s.org("Liceo", "horario_estricto")
	tol := policy.Minutes(5)
	math, err := s.st.AddCourse(s.ctx, model.Course{OrganizationID: o.ID, Name: "Matemáticas", EntryTolerance: &tol})
	s.Require().NoError(err)
	art, err := s.st.AddCourse(s.ctx, model.Course{OrganizationID: o.ID, Name: "Arte"})
	s.Require().NoError(err)
	unrelated, err := s.st.AddCourse(s.ctx, model.Course{OrganizationID: o.ID, Name: "Historia"})
	s.Require().NoError(err)

	s.Require().NoError(s.st.Enroll(s.ctx, p.ID, math.ID))
	s.Require().NoError(s.st.Enroll(s.ctx, p.ID, art.ID))
	s.Require().NoError(s.st.Enroll(s.ctx, p.ID, art.ID))

	for _, sc := range []model.Schedule{
		{SchedulableType: model.SchedulableCourse, SchedulableID: math.ID, DayOfWeek: time.Monday, Start: model.MustParseClock("08:00"), End: model.MustParseClock("09:30")},
		{SchedulableType: model.SchedulableCourse, SchedulableID: art.ID, DayOfWeek: time.Friday, Start: model.MustParseClock("15:00"), End: model.MustParseClock("16:00")},
		{SchedulableType: model.SchedulableCourse, SchedulableID: unrelated.ID, DayOfWeek: time.Friday, Start: model.MustParseClock("10:00"), End: model.MustParseClock("11:00")},
		{SchedulableType: "room", SchedulableID: math.ID, DayOfWeek: time.Tuesday, Start: model.MustParseClock("10:00"), End: model.MustParseClock("11:00")},
	} {
		_, err := s.st.AddSchedule(s.ctx, sc)
		s.Require().NoError(err)
	}

	got, err := s.st.CourseSchedulesOf(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(got, 2)

	byCourse := map[string]model.CourseSchedule{}
	for _, cs := range got {
		byCourse[cs.Course.Name] = cs
	}
	s.Require().Contains(byCourse, "Matemáticas")
	s.Require().Contains(byCourse, "Arte")
	s.Equal(time.Monday, byCourse["Matemáticas"].Schedule.DayOfWeek)
	s.Equal("09:30:00", byCourse["Matemáticas"].Schedule.End.String())
	s.Require().NotNil(byCourse["Matemáticas"].Course.EntryTolerance)
	s.Equal(5, byCourse["Matemáticas"].Course.EntryTolerance.Minutes())
	s.Nil(byCourse["Arte"].Course.EntryTolerance)
}

func (s *Suite) TestCourseToleranceNone() {
	p := s.person("66666666", "Ivo")
	o := s.org("Colegio", "horario_estricto")
	none := policy.NoTolerance()
	c, err := s.st.AddCourse(s.ctx, model.Course{OrganizationID: o.ID, Name: "Taller", EntryTolerance: &none})
	s.Require().NoError(err)
	s.Require().NoError(s.st.Enroll(s.ctx, p.ID, c.ID))
	_, err = s.st.AddSchedule(s.ctx, model.Schedule{SchedulableType: model.SchedulableCourse, SchedulableID: c.ID, DayOfWeek: time.Wednesday, Start: model.MustParseClock("12:00"), End: model.MustParseClock("13:00")})
	s.Require().NoError(err)

	got, err := s.st.CourseSchedulesOf(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Require().NotNil(got[0].Course.EntryTolerance)
	s.True(got[0].Course.EntryTolerance.IsNone())
}

func (s *Suite) TestEnrolledCoursesIncludesUnscheduled() {
	p := s.person("67676767", "Lía")
	o := s.org("Extensión", "horario_estricto")
	none := policy.NoTolerance()
	open, err := s.st.AddCourse(s.ctx, model.Course{OrganizationID: o.ID, Name: "Taller abierto", EntryTolerance: &none})
	s.Require().NoError(err)
	timed, err := s.st.AddCourse(s.ctx, model.Course{OrganizationID: o.ID, Name: "Química"})
	s.Require().NoError(err)
	other, err := s.st.AddCourse(s.ctx, model.Course{OrganizationID: o.ID, Name: "Ajeno"})
	s.Require().NoError(err)
	s.Require().NoError(s.st.Enroll(s.ctx, p.ID, open.ID))
	s.Require().NoError(s.st.Enroll(s.ctx, p.ID, timed.ID))
	_, err = s.st.AddSchedule(s.ctx, model.Schedule{SchedulableType: model.SchedulableCourse, SchedulableID: timed.ID, DayOfWeek: time.Thursday, Start: model.MustParseClock("10:00"), End: model.MustParseClock("12:00")})
	s.Require().NoError(err)

	courses, err := s.st.EnrolledCoursesOf(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(courses, 2)
	s.Equal(open.ID, courses[0].ID)
	s.Require().NotNil(courses[0].EntryTolerance)
	s.True(courses[0].EntryTolerance.IsNone())
	s.Equal(timed.ID, courses[1].ID)
	s.Nil(courses[1].EntryTolerance)
	s.NotEqual(other.ID, courses[1].ID)

	windows, err := s.st.CourseSchedulesOf(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(windows, 1)
	s.Equal(timed.ID, windows[0].Course.ID)

	unknown, err := s.st.EnrolledCoursesOf(s.ctx, p.ID+1000)
	s.Require().NoError(err)
	s.Empty(unknown)
}

func (s *Suite) accessLog(rut string, dir model.Direction, at time.Time) model.AccessLog {
	rec := model.AccessLog{
		ID:         uuid.New(),
		RUT:        rut,
		Direction:  dir,
		Allowed:    true,
		Status:     model.StatusPermitido,
		Reason:     model.ReasonStaffAccess,
		Gate:       "norte",
		OccurredAt: at.UTC(),
		RecordedAt: at.UTC(),
	}
	s.Require().NoError(s.st.RecordAccessLog(s.ctx, rec))
	return rec
}

func (s *Suite) TestAccessLogsNewestFirst() {
	base := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	first := s.accessLog("77777777", model.DirectionEntry, base)
	second := s.accessLog("77777777", model.DirectionExit, base.Add(time.Hour))
	s.accessLog("88888888", model.DirectionEntry, base.Add(2*time.Hour))

	got, err := s.st.ListAccessLogs(s.ctx, model.AccessLogFilter{RUT: "77777777"})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(second.ID, got[0].ID)
	s.Equal(first.ID, got[1].ID)
	s.True(got[0].OccurredAt.Equal(second.OccurredAt))
	s.Equal(model.DirectionExit, got[0].Direction)
	s.Equal("norte", got[0].Gate)

	got, err = s.st.ListAccessLogs(s.ctx, model.AccessLogFilter{Direction: model.DirectionEntry, Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("88888888", got[0].RUT)
}

func (s *Suite) TestAccessLogsSameInstantNewestInsertFirst() {
	at := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	first := s.accessLog("12121212", model.DirectionEntry, at)
	second := s.accessLog("12121212", model.DirectionExit, at)
	third := s.accessLog("12121212", model.DirectionEntry, at)

	got, err := s.st.ListAccessLogs(s.ctx, model.AccessLogFilter{RUT: "12121212"})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal([]uuid.UUID{third.ID, second.ID, first.ID}, []uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
}

func (s *Suite) TestAccessLogPersonRefs() {
	p := s.person("10101010", "Gil")
	o := s.org("Depto", "acceso_total")
	rec := model.AccessLog{
		ID: uuid.New(), PersonID: &p.ID, OrganizationID: &o.ID, RUT: p.RUT,
		Direction: model.DirectionEntry, Allowed: true, Status: model.StatusPermitido,
		Reason: model.ReasonStaffAccess, OccurredAt: time.Now().UTC(), RecordedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.st.RecordAccessLog(s.ctx, rec))

	got, err := s.st.ListAccessLogs(s.ctx, model.AccessLogFilter{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Require().NotNil(got[0].PersonID)
	s.Equal(p.ID, *got[0].PersonID)
	s.Require().NotNil(got[0].OrganizationID)
	s.Equal(o.ID, *got[0].OrganizationID)
}

func (s *Suite) TestPruneOlderThan() {
	now := time.Now().UTC()
	s.accessLog("1", model.DirectionEntry, now.AddDate(0, 0, -40))
	s.accessLog("2", model.DirectionEntry, now.AddDate(0, 0, -31))
	kept := s.accessLog("3", model.DirectionEntry, now.AddDate(0, 0, -1))

	deleted, err := s.st.PruneOlderThan(s.ctx, now.AddDate(0, 0, -30))
	s.Require().NoError(err)
	s.Equal(int64(2), deleted)

	got, err := s.st.ListAccessLogs(s.ctx, model.AccessLogFilter{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(kept.ID, got[0].ID)

	deleted, err = s.st.PruneOlderThan(s.ctx, now.AddDate(0, 0, -30))
	s.Require().NoError(err)
	s.Zero(deleted)
}
