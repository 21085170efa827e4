// Package store declares the lookup and persistence ports the access engine
// depends on. Backends live in the subpackages.
package store

import (
	"context"
	"time"

	"github.com/fcv/porteria/internal/porteria/model"
)

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks

// PersonStore resolves normalized identifiers. A miss returns an error
// wrapping sentinel.ErrNotFound.
type PersonStore interface {
	FindPersonByRUT(ctx context.Context, rut string) (model.Person, error)
}

// MembershipStore returns memberships active on asOf's calendar date (in
// asOf's location), joined with their organization, in insertion order.
type MembershipStore interface {
	ActiveMembershipsOf(ctx context.Context, personID int64, asOf time.Time) ([]model.MembershipWithOrg, error)
}

// ScheduleStore answers which courses a person is enrolled in and their
// weekly windows. EnrolledCoursesOf includes courses with no schedule rows;
// CourseSchedulesOf returns one entry per window, so those courses are
// absent from it.
type ScheduleStore interface {
	EnrolledCoursesOf(ctx context.Context, personID int64) ([]model.Course, error)
	CourseSchedulesOf(ctx context.Context, personID int64) ([]model.CourseSchedule, error)
}

// AccessLogStore persists entry and exit events. ListAccessLogs returns the
// newest events first.
type AccessLogStore interface {
	RecordAccessLog(ctx context.Context, rec model.AccessLog) error
	ListAccessLogs(ctx context.Context, filter model.AccessLogFilter) ([]model.AccessLog, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// DirectoryWriter loads directory data. Persons upsert by RUT and
// organizations by name; the returned value carries the assigned ID.
type DirectoryWriter interface {
	UpsertPerson(ctx context.Context, person model.Person) (model.Person, error)
	UpsertOrganization(ctx context.Context, org model.Organization) (model.Organization, error)
	AddMembership(ctx context.Context, membership model.Membership) (model.Membership, error)
	AddCourse(ctx context.Context, course model.Course) (model.Course, error)
	Enroll(ctx context.Context, personID, courseID int64) error
	AddSchedule(ctx context.Context, schedule model.Schedule) (model.Schedule, error)
}

// Directory is everything the resolver reads.
type Directory interface {
	PersonStore
	MembershipStore
	ScheduleStore
}

// Store is implemented by every full backend.
type Store interface {
	Directory
	DirectoryWriter
	AccessLogStore
}
