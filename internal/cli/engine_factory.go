package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/pkg/adapters/redis"
	"github.com/aretw0/nfa/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Environment is what every command needs: an engine, its logger and the
// registry its metrics are recorded in.
type Environment struct {
	Engine   *nfa.Engine
	Logger   *slog.Logger
	Registry *prometheus.Registry

	store *redis.Store
}

// Setup initializes an engine with standard CLI conventions.
// Definitions come from cfg.Dir unless a Redis URL is configured.
func Setup(ctx context.Context, cfg Config, logger *slog.Logger) (*Environment, error) {
	if logger == nil {
		logger = createLogger(cfg.Debug)
	}

	env := &Environment{
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}

	// 1. Logger & Hooks
	hooks := observability.NewMetrics(env.Registry).Hooks()
	if cfg.Debug {
		hooks = observability.Merge(hooks, observability.LoggingHooks(logger))
	}
	engineOpts := []nfa.Option{
		nfa.WithLogger(logger),
		nfa.WithLifecycleHooks(hooks),
	}
	if cfg.Strict {
		engineOpts = append(engineOpts, nfa.WithStrict())
	}

	// 2. Storage
	repoPath := cfg.Dir
	if cfg.Redis.URL != "" {
		store, err := openRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		env.store = store
		engineOpts = append(engineOpts, nfa.WithLoader(store))
		repoPath = ""
	}

	// 3. Initialize
	engine, err := nfa.New(repoPath, engineOpts...)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	env.Engine = engine
	return env, nil
}

// Close releases the Redis connection, if any.
func (e *Environment) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

func openRedis(ctx context.Context, cfg RedisConfig) (*redis.Store, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	store, err := redis.NewFromURL(cfg.URL, opts...)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return store, nil
}
