// Package schedule decides whether an instant falls inside one of a
// person's course windows.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/policy"
	"github.com/fcv/porteria/internal/porteria/store"
)

//go:generate mockgen -source=schedule.go -destination=mocks/checker_mock.go -package=mocks Checker

// Checker is consulted for students whose preset entry rule is
// schedule-gated. now is already in the facility's time zone.
type Checker interface {
	WithinSchedule(ctx context.Context, person model.Person, rule policy.Rule, now time.Time) (bool, error)
}

// AlwaysWithin accepts every instant. It stands in where schedule
// enforcement is disabled.
type AlwaysWithin struct{}

func (AlwaysWithin) WithinSchedule(context.Context, model.Person, policy.Rule, time.Time) (bool, error) {
	return true, nil
}

// WindowChecker evaluates the person's enrolled course schedules.
type WindowChecker struct {
	schedules store.ScheduleStore
}

func NewWindowChecker(schedules store.ScheduleStore) *WindowChecker {
	return &WindowChecker{schedules: schedules}
}

// WithinSchedule reports whether now is acceptable for any enrolled course.
// A course whose effective tolerance is "none" passes whether or not it has
// windows. A person enrolled in nothing passes only when the preset
// tolerance itself is "none".
func (c *WindowChecker) WithinSchedule(ctx context.Context, person model.Person, rule policy.Rule, now time.Time) (bool, error) {
	courses, err := c.schedules.EnrolledCoursesOf(ctx, person.ID)
	if err != nil {
		return false, fmt.Errorf("enrolled courses of person %d: %w", person.ID, err)
	}
	if len(courses) == 0 {
		return rule.Tolerance.IsNone(), nil
	}
	for _, course := range courses {
		if EffectiveTolerance(course, rule.Tolerance).IsNone() {
			return true, nil
		}
	}

	windows, err := c.schedules.CourseSchedulesOf(ctx, person.ID)
	if err != nil {
		return false, fmt.Errorf("course schedules of person %d: %w", person.ID, err)
	}
	for _, w := range windows {
		if Within(w, rule.Tolerance, now) {
			return true, nil
		}
	}
	return false, nil
}

// EffectiveTolerance is the course's own tolerance when set, otherwise the
// preset's.
func EffectiveTolerance(course model.Course, presetTolerance policy.Tolerance) policy.Tolerance {
	if course.EntryTolerance != nil {
		return *course.EntryTolerance
	}
	return presetTolerance
}

// Within applies one window. "none" disables the time restriction for that
// course. The tolerance only widens the window before its start and both
// ends are inclusive. Windows never wrap past midnight.
func Within(w model.CourseSchedule, presetTolerance policy.Tolerance, now time.Time) bool {
	tol := EffectiveTolerance(w.Course, presetTolerance)
	if tol.IsNone() {
		return true
	}
	if now.Weekday() != w.Schedule.DayOfWeek {
		return false
	}
	at := model.ClockOf(now)
	opens := w.Schedule.Start.Add(-time.Duration(tol.Minutes()) * time.Minute)
	return at >= opens && at <= w.Schedule.End
}
