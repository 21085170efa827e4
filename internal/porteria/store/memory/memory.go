// Package memory is a mutex-guarded Store for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps everything in maps behind a single RWMutex. It is meant for
// tests and the in-memory backend.
type Store struct {
	mu sync.RWMutex

	nextID int64

	persons     map[int64]model.Person
	personByRUT map[string]int64
	orgs        map[int64]model.Organization
	orgByName   map[string]int64
	memberships []model.Membership
	courses     map[int64]model.Course
	enrollments map[int64][]int64 // person -> courses, enrollment order
	schedules   []model.Schedule
	logs        []model.AccessLog
}

func New() *Store {
	return &Store{
		persons:     make(map[int64]model.Person),
		personByRUT: make(map[string]int64),
		orgs:        make(map[int64]model.Organization),
		orgByName:   make(map[string]int64),
		courses:     make(map[int64]model.Course),
		enrollments: make(map[int64][]int64),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) FindPersonByRUT(_ context.Context, rut string) (model.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.personByRUT[rut]
	if !ok {
		return model.Person{}, fmt.Errorf("person %q: %w", rut, sentinel.ErrNotFound)
	}
	return s.persons[id], nil
}

func (s *Store) ActiveMembershipsOf(_ context.Context, personID int64, asOf time.Time) ([]model.MembershipWithOrg, error) {
	day := model.DateOf(asOf)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.MembershipWithOrg
	for _, m := range s.memberships {
		if m.PersonID != personID || !m.ActiveOn(day) {
			continue
		}
		org, ok := s.orgs[m.OrganizationID]
		if !ok {
			continue
		}
		out = append(out, model.MembershipWithOrg{Membership: m, Organization: org})
	}
	return out, nil
}

func (s *Store) EnrolledCoursesOf(_ context.Context, personID int64) ([]model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Course
	for _, cid := range s.enrollments[personID] {
		out = append(out, s.courses[cid])
	}
	return out, nil
}

func (s *Store) CourseSchedulesOf(_ context.Context, personID int64) ([]model.CourseSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.CourseSchedule
	for _, cid := range s.enrollments[personID] {
		c := s.courses[cid]
		for _, sc := range s.schedules {
			if sc.SchedulableType == model.SchedulableCourse && sc.SchedulableID == cid {
				out = append(out, model.CourseSchedule{Course: c, Schedule: sc})
			}
		}
	}
	return out, nil
}

func (s *Store) UpsertPerson(_ context.Context, p model.Person) (model.Person, error) {
	if p.RUT == "" {
		return model.Person{}, fmt.Errorf("person rut: %w", sentinel.ErrInvalidInput)
	}
	if p.Status == "" {
		p.Status = model.PersonStatusActive
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.personByRUT[p.RUT]; ok {
		p.ID = id
	} else {
		p.ID = s.id()
		s.personByRUT[p.RUT] = p.ID
	}
	s.persons[p.ID] = p
	return p, nil
}

func (s *Store) UpsertOrganization(_ context.Context, o model.Organization) (model.Organization, error) {
	if strings.TrimSpace(o.Name) == "" {
		return model.Organization{}, fmt.Errorf("organization name: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.orgByName[o.Name]; ok {
		o.ID = id
	} else {
		o.ID = s.id()
		s.orgByName[o.Name] = o.ID
	}
	s.orgs[o.ID] = o
	return o, nil
}

func (s *Store) AddMembership(_ context.Context, m model.Membership) (model.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[m.PersonID]; !ok {
		return model.Membership{}, fmt.Errorf("membership person %d: %w", m.PersonID, sentinel.ErrNotFound)
	}
	if _, ok := s.orgs[m.OrganizationID]; !ok {
		return model.Membership{}, fmt.Errorf("membership organization %d: %w", m.OrganizationID, sentinel.ErrNotFound)
	}
	m.ID = s.id()
	s.memberships = append(s.memberships, m)
	return m, nil
}

func (s *Store) AddCourse(_ context.Context, c model.Course) (model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[c.OrganizationID]; !ok {
		return model.Course{}, fmt.Errorf("course organization %d: %w", c.OrganizationID, sentinel.ErrNotFound)
	}
	c.ID = s.id()
	s.courses[c.ID] = c
	return c, nil
}

func (s *Store) Enroll(_ context.Context, personID, courseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[personID]; !ok {
		return fmt.Errorf("enroll person %d: %w", personID, sentinel.ErrNotFound)
	}
	if _, ok := s.courses[courseID]; !ok {
		return fmt.Errorf("enroll course %d: %w", courseID, sentinel.ErrNotFound)
	}
	for _, cid := range s.enrollments[personID] {
		if cid == courseID {
			return nil
		}
	}
	s.enrollments[personID] = append(s.enrollments[personID], courseID)
	return nil
}

func (s *Store) AddSchedule(_ context.Context, sc model.Schedule) (model.Schedule, error) {
	if sc.End < sc.Start {
		return model.Schedule{}, fmt.Errorf("schedule ends before it starts: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sc.ID = s.id()
	s.schedules = append(s.schedules, sc)
	return sc, nil
}

func (s *Store) RecordAccessLog(_ context.Context, rec model.AccessLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, rec)
	return nil
}

func (s *Store) ListAccessLogs(_ context.Context, f model.AccessLogFilter) ([]model.AccessLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = model.DefaultAccessLogLimit
	}
	s.mu.RLock()
	out := make([]model.AccessLog, 0, len(s.logs))
	for i := len(s.logs) - 1; i >= 0; i-- {
		l := s.logs[i]
		if f.RUT != "" && l.RUT != f.RUT {
			continue
		}
		if f.Direction != "" && l.Direction != f.Direction {
			continue
		}
		out = append(out, l)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.logs[:0]
	var deleted int64
	for _, l := range s.logs {
		if l.OccurredAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, l)
	}
	s.logs = kept
	return deleted, nil
}
