// Package model holds the plain values the access engine reads and produces.
// Stores return these; nothing here performs I/O.
package model

import (
	"time"

	"github.com/fcv/porteria/internal/porteria/policy"
)

const (
	PersonStatusActive   = "active"
	PersonStatusInactive = "inactive"
)

type Person struct {
	ID      int64  `json:"id"`
	RUT     string `json:"rut"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Contact string `json:"contact,omitempty"`
}

type OrganizationType string

const (
	OrganizationInternal  OrganizationType = "internal"
	OrganizationAgreement OrganizationType = "agreement"
	OrganizationExternal  OrganizationType = "external"
)

type Organization struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Type             OrganizationType `json:"type"`
	AccessRulePreset string           `json:"access_rule_preset"`
}

type Role string

const (
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

type Membership struct {
	ID             int64 `json:"id"`
	PersonID       int64 `json:"person_id"`
	OrganizationID int64 `json:"organization_id"`
	Role           Role  `json:"role"`
	StartDate      *Date `json:"start_date,omitempty"`
	EndDate        *Date `json:"end_date,omitempty"`
}

// ActiveOn reports whether day falls inside the membership's validity window.
// A nil bound is unbounded; both bounds are inclusive.
func (m Membership) ActiveOn(day Date) bool {
	if m.StartDate != nil && m.StartDate.Compare(day) > 0 {
		return false
	}
	if m.EndDate != nil && m.EndDate.Compare(day) < 0 {
		return false
	}
	return true
}

type MembershipWithOrg struct {
	Membership   Membership   `json:"membership"`
	Organization Organization `json:"organization"`
}

type Course struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	// EntryTolerance overrides the preset's tolerance when set.
	EntryTolerance *policy.Tolerance `json:"entry_tolerance,omitempty"`
}

const SchedulableCourse = "course"

type Schedule struct {
	ID              int64        `json:"id"`
	SchedulableType string       `json:"schedulable_type"`
	SchedulableID   int64        `json:"schedulable_id"`
	DayOfWeek       time.Weekday `json:"day_of_week"`
	Start           Clock        `json:"start_time"`
	End             Clock        `json:"end_time"`
}

// CourseSchedule is one weekly window of a course the person is enrolled in.
type CourseSchedule struct {
	Course   Course   `json:"course"`
	Schedule Schedule `json:"schedule"`
}
