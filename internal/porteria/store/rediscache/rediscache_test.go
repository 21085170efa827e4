package rediscache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fcv/porteria/internal/lib/logger"
	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/store/mocks"
	"github.com/fcv/porteria/internal/porteria/store/rediscache"
)

// unreachable points at a closed port so every command fails fast.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_FallsThroughWhenRedisDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockDirectory(ctrl)
	m := metrics.New(prometheus.NewRegistry())
	c := rediscache.New(inner, unreachable(t), rediscache.WithMetrics(m), rediscache.WithLogger(logger.Discard()))
	ctx := context.Background()

	want := model.Person{ID: 7, RUT: "12345678k", Name: "Ana"}
	inner.EXPECT().FindPersonByRUT(gomock.Any(), "12345678k").Return(want, nil).Times(2)

	for range 2 {
		got, err := c.FindPersonByRUT(ctx, "12345678k")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("person", "error")))
}

func TestCache_PropagatesInnerErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockDirectory(ctrl)
	c := rediscache.New(inner, unreachable(t), rediscache.WithLogger(logger.Discard()))
	ctx := context.Background()

	inner.EXPECT().FindPersonByRUT(gomock.Any(), "1").Return(model.Person{}, sentinel.ErrNotFound)
	_, err := c.FindPersonByRUT(ctx, "1")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	boom := errors.New("db down")
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	inner.EXPECT().ActiveMembershipsOf(gomock.Any(), int64(1), now).Return(nil, boom)
	_, err = c.ActiveMembershipsOf(ctx, 1, now)
	assert.ErrorIs(t, err, boom)

	inner.EXPECT().CourseSchedulesOf(gomock.Any(), int64(1)).Return(nil, boom)
	_, err = c.CourseSchedulesOf(ctx, 1)
	assert.ErrorIs(t, err, boom)

	inner.EXPECT().EnrolledCoursesOf(gomock.Any(), int64(1)).Return(nil, boom)
	_, err = c.EnrolledCoursesOf(ctx, 1)
	assert.ErrorIs(t, err, boom)
}
