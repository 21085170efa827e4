package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcv/porteria/internal/lib/logger"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/service"
)

type evaluatorFunc func(ctx context.Context, raw string) (model.Decision, error)

func (f evaluatorFunc) Evaluate(ctx context.Context, raw string) (model.Decision, error) {
	return f(ctx, raw)
}

func TestAccessService_Check_CountsOutcome(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewAccessService(evaluatorFunc(func(context.Context, string) (model.Decision, error) {
		return service.Unregistered(), nil
	}), logger.Discard(), m)

	d, err := svc.Check(context.Background(), "99999999k")
	require.NoError(t, err)
	assert.Equal(t, model.ReasonPersonNotRegistered, d.Reason)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecisionOutcome.WithLabelValues("denegado", "Persona no registrada")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.EvaluateLatency))
}

func TestAccessService_Check_PropagatesError(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	boom := errors.New("boom")
	svc := service.NewAccessService(evaluatorFunc(func(context.Context, string) (model.Decision, error) {
		return model.Decision{}, boom
	}), logger.Discard(), m)

	_, err := svc.Check(context.Background(), "1")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, testutil.CollectAndCount(m.DecisionOutcome))
}

func TestAccessService_NilMetricsAndLogger(t *testing.T) {
	svc := service.NewAccessService(evaluatorFunc(func(context.Context, string) (model.Decision, error) {
		return service.Unregistered(), nil
	}), nil, nil)

	_, err := svc.Check(context.Background(), "1")
	assert.NoError(t, err)
}
