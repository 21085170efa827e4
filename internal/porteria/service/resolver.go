package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fcv/porteria/internal/lib/requestcontext"
	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/lib/sl"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/policy"
	"github.com/fcv/porteria/internal/porteria/rut"
	"github.com/fcv/porteria/internal/porteria/schedule"
	"github.com/fcv/porteria/internal/porteria/store"
)

type verdictState int

const (
	pending verdictState = iota
	denied
	allowed
)

// verdict is the resolver's running decision while it walks memberships.
type verdict struct {
	state  verdictState
	reason string
	org    *model.Organization
}

func deny(reason string, org *model.Organization) verdict {
	return verdict{state: denied, reason: reason, org: org}
}

func allow(reason string, org *model.Organization) verdict {
	return verdict{state: allowed, reason: reason, org: org}
}

func (v verdict) decision(p model.Person) model.Decision {
	d := model.Decision{
		Allowed: v.state == allowed,
		Status:  model.StatusOf(v.state == allowed),
		Reason:  v.reason,
		Person:  model.SummarizePerson(p),
	}
	if v.org != nil {
		d.Organization = model.SummarizeOrganization(*v.org)
	}
	return d
}

// Unregistered is the decision for an identifier that matches nobody.
func Unregistered() model.Decision {
	return model.Decision{
		Allowed: false,
		Status:  model.StatusDenegado,
		Reason:  model.ReasonPersonNotRegistered,
	}
}

// Resolver turns a raw identifier into an entry decision.
type Resolver struct {
	persons     store.PersonStore
	memberships store.MembershipStore
	presets     *policy.Table
	checker     schedule.Checker
	loc         *time.Location
	log         *slog.Logger
	metrics     *metrics.Metrics
}

// ResolverOption configures a Resolver built by NewResolver.
type ResolverOption func(*Resolver)

// WithLocation sets the zone "today" and the time of day are taken in.
func WithLocation(loc *time.Location) ResolverOption {
	return func(r *Resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithResolverLogger replaces slog.Default. Nil is ignored.
func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithResolverMetrics counts unknown preset keys on m.
func WithResolverMetrics(m *metrics.Metrics) ResolverOption {
	return func(r *Resolver) { r.metrics = m }
}

// NewResolver builds a Resolver over the given stores. Times are taken in
// time.Local unless WithLocation says otherwise.
func NewResolver(
	persons store.PersonStore,
	memberships store.MembershipStore,
	presets *policy.Table,
	checker schedule.Checker,
	opts ...ResolverOption,
) *Resolver {
	r := &Resolver{
		persons:     persons,
		memberships: memberships,
		presets:     presets,
		checker:     checker,
		loc:         time.Local,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.checker == nil {
		r.checker = schedule.AlwaysWithin{}
	}
	r.log = r.log.With(sl.Module("service.resolver"))
	return r
}

// Evaluate decides entry for raw at requestcontext.Now(ctx). Unknown
// identifiers and missing presets produce deny decisions, not errors; only
// store failures are returned as errors.
func (r *Resolver) Evaluate(ctx context.Context, raw string) (model.Decision, error) {
	normalized := rut.Normalize(raw)
	person, err := r.persons.FindPersonByRUT(ctx, normalized)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Unregistered(), nil
	}
	if err != nil {
		return model.Decision{}, fmt.Errorf("find person: %w", err)
	}

	now := requestcontext.Now(ctx).In(r.loc)
	memberships, err := r.memberships.ActiveMembershipsOf(ctx, person.ID, now)
	if err != nil {
		return model.Decision{}, fmt.Errorf("active memberships of %d: %w", person.ID, err)
	}

	current := deny(model.ReasonNoActiveMembership, nil)
	for _, m := range memberships {
		next, err := r.step(ctx, person, m, now)
		if err != nil {
			return model.Decision{}, err
		}
		if next.state == pending {
			continue
		}
		current = next
		if current.state == allowed {
			break
		}
	}
	return current.decision(person), nil
}

// step evaluates one membership. Roles the engine does not know stay pending.
func (r *Resolver) step(ctx context.Context, person model.Person, m model.MembershipWithOrg, now time.Time) (verdict, error) {
	org := m.Organization
	switch m.Membership.Role {
	case model.RoleStaff:
		return allow(model.ReasonStaffAccess, &org), nil
	case model.RoleStudent:
		entry := r.preset(ctx, org).Entry
		if !entry.BySchedule {
			if entry.Allowed {
				return allow(model.ReasonStudentFlexible, &org), nil
			}
			return deny(model.ReasonStudentFlexible, &org), nil
		}
		within, err := r.checker.WithinSchedule(ctx, person, entry, now)
		if err != nil {
			return verdict{}, fmt.Errorf("schedule check for %d: %w", person.ID, err)
		}
		if within {
			return allow(model.ReasonStudentInSchedule, &org), nil
		}
		return deny(model.ReasonStudentOffSchedule, &org), nil
	default:
		return verdict{state: pending}, nil
	}
}

func (r *Resolver) preset(ctx context.Context, org model.Organization) policy.Preset {
	p, ok := r.presets.Lookup(org.AccessRulePreset)
	if !ok {
		r.metrics.IncrementPresetMiss(org.AccessRulePreset)
		r.log.WarnContext(ctx, "organization references unknown access rule preset",
			slog.Int64("organization_id", org.ID),
			slog.String("preset", org.AccessRulePreset),
		)
	}
	return p
}
