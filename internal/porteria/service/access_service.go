package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fcv/porteria/internal/lib/sl"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/rut"
)

// Evaluator is the part of Resolver the access services depend on.
type Evaluator interface {
	Evaluate(ctx context.Context, raw string) (model.Decision, error)
}

// AccessService answers entry checks and records outcome metrics.
type AccessService struct {
	evaluator Evaluator
	log       *slog.Logger
	metrics   *metrics.Metrics
}

// NewAccessService wraps e. log and m may be nil.
func NewAccessService(e Evaluator, log *slog.Logger, m *metrics.Metrics) *AccessService {
	if log == nil {
		log = slog.Default()
	}
	return &AccessService{
		evaluator: e,
		log:       log.With(sl.Module("service.access")),
		metrics:   m,
	}
}

func (s *AccessService) Check(ctx context.Context, raw string) (model.Decision, error) {
	start := time.Now()
	d, err := s.evaluator.Evaluate(ctx, raw)
	s.metrics.ObserveEvaluateLatency(time.Since(start))
	if err != nil {
		s.log.ErrorContext(ctx, "access evaluation failed", sl.Secret("rut", rut.Normalize(raw)), sl.Err(err))
		return model.Decision{}, err
	}

	s.metrics.IncrementOutcome(string(d.Status), d.Reason)
	s.log.InfoContext(ctx, "access evaluated",
		sl.Secret("rut", rut.Normalize(raw)),
		slog.String("status", string(d.Status)),
		slog.String("reason", d.Reason),
	)
	return d, nil
}
