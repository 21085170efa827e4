package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fcv/porteria/internal/config"
	"github.com/fcv/porteria/internal/db"
	"github.com/fcv/porteria/internal/lib/sl"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/store"
	"github.com/fcv/porteria/internal/porteria/store/memory"
	"github.com/fcv/porteria/internal/porteria/store/postgres"
	"github.com/fcv/porteria/internal/porteria/store/rediscache"
	"github.com/fcv/porteria/internal/porteria/store/sqlite"
)

type openedStore struct {
	store.Store
	close func()
}

func openStore(ctx context.Context, cfg *config.Config, loc *time.Location, log *slog.Logger) (openedStore, error) {
	var out openedStore
	switch cfg.Database.Driver {
	case config.DriverMemory:
		out = openedStore{Store: memory.New(), close: func() {}}

	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.Database.Path)
		if err != nil {
			return openedStore{}, err
		}
		writer := db.NewWorker(conn)
		out = openedStore{
			Store: sqlite.New(conn, writer),
			close: func() {
				writer.Close()
				closeDB(log, conn)
			},
		}

	case config.DriverPostgres:
		conn, err := db.OpenPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			return openedStore{}, err
		}
		out = openedStore{Store: postgres.New(conn), close: func() { closeDB(log, conn) }}

	default:
		return openedStore{}, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	if cfg.Database.Seed {
		seeded, err := db.SeedDev(ctx, out.Store, model.DateOf(time.Now().In(loc)))
		if err != nil {
			out.close()
			return openedStore{}, fmt.Errorf("seed: %w", err)
		}
		log.Info("development directory", slog.Bool("seeded", seeded))
	}
	return out, nil
}

func closeDB(log *slog.Logger, conn *sql.DB) {
	if err := conn.Close(); err != nil {
		log.Warn("close database", sl.Err(err))
	}
}

// withCache puts the redis read-through cache in front of dir when a URL is
// configured. An unreachable redis at startup is logged, not fatal.
func withCache(ctx context.Context, cfg *config.Config, dir store.Directory, log *slog.Logger, m *metrics.Metrics) (store.Directory, func(), error) {
	if cfg.Redis.URL == "" {
		return dir, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, lookups fall through to the database", sl.Err(err))
	}

	cached := rediscache.New(dir, client,
		rediscache.WithTTL(cfg.Redis.TTL),
		rediscache.WithMetrics(m),
		rediscache.WithLogger(log),
	)
	return cached, func() { _ = client.Close() }, nil
}
