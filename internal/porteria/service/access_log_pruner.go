package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fcv/porteria/internal/lib/sl"
	"github.com/fcv/porteria/internal/porteria/metrics"
)

const defaultPruneInterval = 6 * time.Hour

type logPruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AccessLogPruner periodically deletes access logs older than the retention
// period. A retention of 0 disables it.
type AccessLogPruner struct {
	store     logPruner
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	log       *slog.Logger
	metrics   *metrics.Metrics

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

type PrunerConfig struct {
	// RetentionDays is how many days of access history to keep.
	// 0 keeps everything and the pruner does not start.
	RetentionDays int

	// IntervalHours is how often the pruner runs. Defaults to 6.
	IntervalHours int

	// Interval overrides IntervalHours when set. Used by tests.
	Interval time.Duration
}

func NewAccessLogPruner(s logPruner, cfg PrunerConfig, log *slog.Logger, m *metrics.Metrics) *AccessLogPruner {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Duration(cfg.IntervalHours) * time.Hour
	}
	if interval <= 0 {
		interval = defaultPruneInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &AccessLogPruner{
		store:     s,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval:  interval,
		now:       time.Now,
		log:       log.With(sl.Module("service.pruner")),
		metrics:   m,
		done:      make(chan struct{}),
	}
}

// Start prunes once immediately and then on every interval until ctx is
// cancelled or Stop is called. Calling Start twice has no effect.
func (p *AccessLogPruner) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		if p.retention <= 0 {
			p.log.InfoContext(ctx, "access log pruner disabled", slog.Int("retention_days", 0))
			close(p.done)
			return
		}

		ctx, p.cancel = context.WithCancel(ctx)
		go p.loop(ctx)

		p.log.InfoContext(ctx, "access log pruner started",
			slog.Int("retention_days", int(p.retention.Hours()/24)),
			slog.Duration("interval", p.interval),
		)
	})
}

// Stop signals the loop to exit and waits for it. Safe to call repeatedly,
// and before Start.
func (p *AccessLogPruner) Stop() {
	p.startOnce.Do(func() { close(p.done) })
	p.stopOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
	})
	<-p.done
}

func (p *AccessLogPruner) loop(ctx context.Context) {
	defer close(p.done)

	p.PruneOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PruneOnce(ctx)
		}
	}
}

// PruneOnce runs a single retention pass and returns the rows deleted.
func (p *AccessLogPruner) PruneOnce(ctx context.Context) int64 {
	cutoff := p.now().UTC().Add(-p.retention)
	deleted, err := p.store.PruneOlderThan(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			p.log.ErrorContext(ctx, "access log prune failed", sl.Err(err))
		}
		return 0
	}
	p.metrics.AddPruned(deleted)
	if deleted > 0 {
		p.log.InfoContext(ctx, "access logs pruned",
			slog.Int64("deleted", deleted),
			slog.Time("cutoff", cutoff),
		)
	}
	return deleted
}
