package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/pkg/adapters/file"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/adapters/mongo"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/aretw0/wayfinder/pkg/persistence/middleware"
	"github.com/aretw0/wayfinder/pkg/ports"
)

const connectTimeout = 10 * time.Second

// Backend bundles the service and what must be released on shutdown.
type Backend struct {
	Service *wayfinder.Service
	Metrics *observability.Metrics
	close   func() error
}

// Close releases store connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// NewBackend builds the store (wrapped in the configured middleware), the
// optional lock and metrics described by cfg and wires them into a Service.
func NewBackend(cfg *config.Config, logger *slog.Logger, hooks ...domain.SearchHooks) (*Backend, error) {
	b := &Backend{}
	opts := []wayfinder.Option{
		wayfinder.WithLogger(logger),
		wayfinder.WithMaxExplored(cfg.Search.MaxExplored),
		wayfinder.WithMaxCells(cfg.Store.MaxCells),
		wayfinder.WithHooks(observability.LogHooks(logger)),
	}

	var store ports.MazeStore
	switch cfg.Store.Driver {
	case "memory":
		store = memory.NewStore()
	case "file":
		store = file.New(cfg.Store.Dir)
	case "redis":
		rc := cfg.Store.Redis
		rs := redis.New(rc.Addr, rc.Password, rc.DB,
			redis.WithPrefix(rc.Prefix),
			redis.WithTTL(rc.TTL),
		)
		store = rs
		if rc.Lock {
			var locker ports.DistributedLocker = redis.NewLocker(rs.Client(), rs.Prefix())
			if rc.LockDriver == "redsync" {
				locker = redis.NewRedsyncLocker(rs.Client(), rs.Prefix())
			}
			opts = append(opts, wayfinder.WithLocker(locker))
		}
		b.close = rs.Close
		logger.Info("Using redis store", "addr", rc.Addr, "prefix", rs.Prefix(), "lock", rc.Lock, "lock_driver", rc.LockDriver)
	case "mongo":
		mc := cfg.Store.Mongo
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		ms, err := mongo.Connect(ctx, mc.URI, mc.Database, mc.Collection)
		if err != nil {
			return nil, err
		}
		store = ms
		b.close = ms.Close
		logger.Info("Using mongo store", "database", mc.Database, "collection", mc.Collection)
	default:
		return nil, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalid, cfg.Store.Driver)
	}

	mws := []middleware.Middleware{
		middleware.NewLoggingMiddleware(logger),
		middleware.NewSizeLimitMiddleware(cfg.Store.MaxCells),
	}
	if cfg.Store.ReadOnly {
		mws = append(mws, middleware.NewReadOnlyMiddleware())
	}
	opts = append(opts, wayfinder.WithStore(middleware.Chain(store, mws...)))

	if cfg.HTTP.Metrics {
		b.Metrics = observability.NewMetrics()
		opts = append(opts, wayfinder.WithHooks(b.Metrics.Hooks()))
	}
	for _, h := range hooks {
		opts = append(opts, wayfinder.WithHooks(h))
	}

	b.Service = wayfinder.New(opts...)
	return b, nil
}
