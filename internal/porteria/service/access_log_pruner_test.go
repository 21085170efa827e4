package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcv/porteria/internal/lib/logger"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/service"
	"github.com/fcv/porteria/internal/porteria/store/memory"
)

func seedLog(t *testing.T, st *memory.Store, at time.Time) {
	t.Helper()
	require.NoError(t, st.RecordAccessLog(context.Background(), model.AccessLog{
		ID: uuid.New(), RUT: "1", Direction: model.DirectionEntry, Status: model.StatusPermitido,
		OccurredAt: at, RecordedAt: at,
	}))
}

func TestAccessLogPruner_DisabledWhenRetentionZero(t *testing.T) {
	pruner := service.NewAccessLogPruner(memory.New(), service.PrunerConfig{RetentionDays: 0, IntervalHours: 1}, logger.Discard(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pruner.Start(ctx)
	pruner.Stop()
}

func TestAccessLogPruner_PruneOnce(t *testing.T) {
	st := memory.New()
	now := time.Now().UTC()
	seedLog(t, st, now.AddDate(0, 0, -40))
	seedLog(t, st, now.AddDate(0, 0, -1))

	m := metrics.New(prometheus.NewRegistry())
	pruner := service.NewAccessLogPruner(st, service.PrunerConfig{RetentionDays: 30}, logger.Discard(), m)

	assert.Equal(t, int64(1), pruner.PruneOnce(context.Background()))
	assert.Equal(t, int64(0), pruner.PruneOnce(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccessLogsPruned))

	logs, err := st.ListAccessLogs(context.Background(), model.AccessLogFilter{})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestAccessLogPruner_LoopPrunesOnStart(t *testing.T) {
	st := memory.New()
	seedLog(t, st, time.Now().UTC().AddDate(0, 0, -40))

	pruner := service.NewAccessLogPruner(st, service.PrunerConfig{RetentionDays: 30, Interval: 10 * time.Millisecond}, logger.Discard(), nil)
	pruner.Start(context.Background())
	defer pruner.Stop()

	assert.Eventually(t, func() bool {
		logs, err := st.ListAccessLogs(context.Background(), model.AccessLogFilter{})
		return err == nil && len(logs) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestAccessLogPruner_StopIsIdempotent(t *testing.T) {
	pruner := service.NewAccessLogPruner(memory.New(), service.PrunerConfig{RetentionDays: 30, IntervalHours: 1}, logger.Discard(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	pruner.Start(ctx)

	cancel()
	pruner.Stop()
	pruner.Stop()
}

func TestAccessLogPruner_StopBeforeStart(t *testing.T) {
	pruner := service.NewAccessLogPruner(memory.New(), service.PrunerConfig{RetentionDays: 30}, logger.Discard(), nil)
	pruner.Stop()
}
