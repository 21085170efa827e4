package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/store"
)

const seedMarkerRUT = "111111111"

// Seeder is the part of a store SeedDev reads and writes.
type Seeder interface {
	store.PersonStore
	store.DirectoryWriter
}

// SeedDev loads a small directory covering each decision path and reports
// whether it wrote anything. A directory that already holds the seeded
// staff member is left untouched, so restarting against a persistent
// database does not duplicate memberships or schedules. Membership dates
// are relative to the day of the first seed.
func SeedDev(ctx context.Context, st Seeder, today model.Date) (bool, error) {
	_, err := st.FindPersonByRUT(ctx, seedMarkerRUT)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		return false, fmt.Errorf("seed check: %w", err)
	}
	if err := seed(ctx, st, today); err != nil {
		return false, err
	}
	return true, nil
}

func seed(ctx context.Context, w store.DirectoryWriter, today model.Date) error {
	orgs := map[string]model.Organization{}
	for _, o := range []model.Organization{
		{Name: "Dirección de Administración", Type: model.OrganizationInternal, AccessRulePreset: "acceso_total"},
		{Name: "Facultad de Ingeniería", Type: model.OrganizationInternal, AccessRulePreset: "horario_estricto"},
		{Name: "Centro de Extensión", Type: model.OrganizationAgreement, AccessRulePreset: "horario_flexible"},
		{Name: "Contratistas", Type: model.OrganizationExternal, AccessRulePreset: "solo_funcionarios"},
	} {
		saved, err := w.UpsertOrganization(ctx, o)
		if err != nil {
			return fmt.Errorf("seed organization %s: %w", o.Name, err)
		}
		orgs[o.Name] = saved
	}

	persons := map[string]model.Person{}
	for _, p := range []model.Person{
		{RUT: seedMarkerRUT, Name: "Marta Funcionaria", Status: model.PersonStatusActive},
		{RUT: "123456785", Name: "Diego Estudiante", Status: model.PersonStatusActive},
		{RUT: "15555555k", Name: "Camila Flexible", Status: model.PersonStatusActive},
		{RUT: "166666666", Name: "Jorge Egresado", Status: model.PersonStatusInactive},
		{RUT: "177777777", Name: "Rosa Contratista", Status: model.PersonStatusActive},
	} {
		saved, err := w.UpsertPerson(ctx, p)
		if err != nil {
			return fmt.Errorf("seed person %s: %w", p.RUT, err)
		}
		persons[p.RUT] = saved
	}

	lastYear := today.AddDays(-365)
	yesterday := today.AddDays(-1)
	for _, m := range []model.Membership{
		{PersonID: persons["111111111"].ID, OrganizationID: orgs["Dirección de Administración"].ID, Role: model.RoleStaff},
		{PersonID: persons["123456785"].ID, OrganizationID: orgs["Facultad de Ingeniería"].ID, Role: model.RoleStudent, StartDate: &lastYear},
		{PersonID: persons["15555555k"].ID, OrganizationID: orgs["Centro de Extensión"].ID, Role: model.RoleStudent},
		{PersonID: persons["166666666"].ID, OrganizationID: orgs["Facultad de Ingeniería"].ID, Role: model.RoleStudent, EndDate: &yesterday},
		{PersonID: persons["177777777"].ID, OrganizationID: orgs["Contratistas"].ID, Role: model.RoleStudent},
	} {
		if _, err := w.AddMembership(ctx, m); err != nil {
			return fmt.Errorf("seed membership for person %d: %w", m.PersonID, err)
		}
	}

	course, err := w.AddCourse(ctx, model.Course{OrganizationID: orgs["Facultad de Ingeniería"].ID, Name: "Cálculo I"})
	if err != nil {
		return fmt.Errorf("seed course: %w", err)
	}
	if err := w.Enroll(ctx, persons["123456785"].ID, course.ID); err != nil {
		return fmt.Errorf("seed enrollment: %w", err)
	}
	for day := time.Monday; day <= time.Friday; day++ {
		if _, err := w.AddSchedule(ctx, model.Schedule{
			SchedulableType: model.SchedulableCourse,
			SchedulableID:   course.ID,
			DayOfWeek:       day,
			Start:           model.MustParseClock("08:30"),
			End:             model.MustParseClock("13:00"),
		}); err != nil {
			return fmt.Errorf("seed schedule %s: %w", day, err)
		}
	}
	return nil
}
