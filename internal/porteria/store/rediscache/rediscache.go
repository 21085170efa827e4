// Package rediscache is a read-through Redis cache in front of a
// store.Directory. Entries expire after a TTL and are never invalidated
// in place, so directory edits become visible within one TTL.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fcv/porteria/internal/lib/sl"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/store"
)

const (
	keyPrefix = "porteria:dir:"

	kindPerson      = "person"
	kindMemberships = "memberships"
	kindSchedules   = "schedules"
	kindCourses     = "courses"

	DefaultTTL = time.Minute
)

var _ store.Directory = (*Cache)(nil)

type Cache struct {
	inner   store.Directory
	client  redis.Cmdable
	ttl     time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// New wraps inner. Redis failures are logged and the lookup falls through
// to inner, so a cache outage never changes a decision.
func New(inner store.Directory, client redis.Cmdable, opts ...Option) *Cache {
	c := &Cache{
		inner:  inner,
		client: client,
		ttl:    DefaultTTL,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.log = c.log.With(sl.Module("store.rediscache"))
	return c
}

func personKey(rut string) string { return keyPrefix + kindPerson + ":" + rut }

func membershipsKey(personID int64, day model.Date) string {
	return fmt.Sprintf("%s%s:%d:%s", keyPrefix, kindMemberships, personID, day)
}

func schedulesKey(personID int64) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, kindSchedules, personID)
}

func coursesKey(personID int64) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, kindCourses, personID)
}

func (c *Cache) FindPersonByRUT(ctx context.Context, rut string) (model.Person, error) {
	var p model.Person
	if c.get(ctx, kindPerson, personKey(rut), &p) {
		return p, nil
	}
	p, err := c.inner.FindPersonByRUT(ctx, rut)
	if err != nil {
		return p, err
	}
	c.set(ctx, personKey(rut), p)
	return p, nil
}

// ActiveMembershipsOf keys entries by calendar day so a membership that
// starts or ends at midnight is not served stale past the date change.
func (c *Cache) ActiveMembershipsOf(ctx context.Context, personID int64, asOf time.Time) ([]model.MembershipWithOrg, error) {
	key := membershipsKey(personID, model.DateOf(asOf))
	var ms []model.MembershipWithOrg
	if c.get(ctx, kindMemberships, key, &ms) {
		return ms, nil
	}
	ms, err := c.inner.ActiveMembershipsOf(ctx, personID, asOf)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, ms)
	return ms, nil
}

func (c *Cache) CourseSchedulesOf(ctx context.Context, personID int64) ([]model.CourseSchedule, error) {
	key := schedulesKey(personID)
	var cs []model.CourseSchedule
	if c.get(ctx, kindSchedules, key, &cs) {
		return cs, nil
	}
	cs, err := c.inner.CourseSchedulesOf(ctx, personID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, cs)
	return cs, nil
}

func (c *Cache) EnrolledCoursesOf(ctx context.Context, personID int64) ([]model.Course, error) {
	key := coursesKey(personID)
	var cs []model.Course
	if c.get(ctx, kindCourses, key, &cs) {
		return cs, nil
	}
	cs, err := c.inner.EnrolledCoursesOf(ctx, personID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, cs)
	return cs, nil
}

func (c *Cache) get(ctx context.Context, kind, key string, dst any) bool {
	b, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.metrics.IncrementCacheLookup(kind, "miss")
		return false
	case err != nil:
		c.metrics.IncrementCacheLookup(kind, "error")
		c.log.WarnContext(ctx, "cache get failed", slog.String("key", key), sl.Err(err))
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		c.metrics.IncrementCacheLookup(kind, "error")
		c.log.WarnContext(ctx, "cache entry undecodable", slog.String("key", key), sl.Err(err))
		return false
	}
	c.metrics.IncrementCacheLookup(kind, "hit")
	return true
}

func (c *Cache) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.WarnContext(ctx, "cache encode failed", slog.String("key", key), sl.Err(err))
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "cache set failed", slog.String("key", key), sl.Err(err))
	}
}
