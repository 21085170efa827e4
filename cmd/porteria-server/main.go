package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/fcv/porteria/internal/config"
	"github.com/fcv/porteria/internal/grpcapi"
	"github.com/fcv/porteria/internal/httpapi"
	"github.com/fcv/porteria/internal/lib/logger"
	"github.com/fcv/porteria/internal/lib/sl"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/schedule"
	"github.com/fcv/porteria/internal/porteria/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	confPath := flag.String("conf", os.Getenv("PORTERIA_CONFIG"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*confPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting porteria",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Database.Driver),
		slog.Bool("schedule_enforce", cfg.Schedule.Enforce),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("porteria stopped", sl.Err(err))
		os.Exit(1)
	}
	log.Info("porteria stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	st, err := openStore(ctx, cfg, loc, log)
	if err != nil {
		return err
	}
	defer st.close()

	directory, closeCache, err := withCache(ctx, cfg, st.Store, log, m)
	if err != nil {
		return err
	}
	defer closeCache()

	var checker schedule.Checker = schedule.AlwaysWithin{}
	if cfg.Schedule.Enforce {
		checker = schedule.NewWindowChecker(directory)
	}

	presets := cfg.PresetTable()
	log.Info("access presets loaded", slog.Any("presets", presets.Keys()))

	resolver := service.NewResolver(directory, directory, presets, checker,
		service.WithLocation(loc),
		service.WithResolverLogger(log),
		service.WithResolverMetrics(m),
	)
	accessSvc := service.NewAccessService(resolver, log, m)
	logSvc := service.NewAccessLogService(resolver, directory, st, log, m)

	pruner := service.NewAccessLogPruner(st, service.PrunerConfig{
		RetentionDays: cfg.AccessLog.RetentionDays,
		IntervalHours: cfg.AccessLog.PruneIntervalHours,
	}, log, m)
	pruner.Start(ctx)
	defer pruner.Stop()

	httpSrv := httpapi.NewServer(httpapi.Dependencies{
		Logger:     log,
		Addr:       cfg.HTTP.Addr,
		Access:     accessSvc,
		AccessLogs: logSvc,
		Gatherer:   reg,
	})

	grpcSrv := grpcapi.NewServer(log)
	grpcLis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", cfg.GRPC.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := grpcSrv.Serve(grpcLis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		grpcSrv.SetNotServing()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpSrv.Shutdown(shutdownCtx)
		grpcSrv.Stop()
		return err
	})
	grpcSrv.SetServing()

	return g.Wait()
}
