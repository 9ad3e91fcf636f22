package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/resumematcher/resume-search/config"
	"github.com/resumematcher/resume-search/internal/analytics"
	"github.com/resumematcher/resume-search/internal/cache"
	"github.com/resumematcher/resume-search/internal/engine"
	internalErrors "github.com/resumematcher/resume-search/internal/errors"
	"github.com/resumematcher/resume-search/internal/logger"
	"github.com/resumematcher/resume-search/internal/metrics"
	"github.com/resumematcher/resume-search/internal/search"
	"github.com/resumematcher/resume-search/services"
	"github.com/resumematcher/resume-search/store"
)

// app is the wired process: engine, optional cache, metrics and analytics.
type app struct {
	cfg       *config.Config
	engine    *engine.Engine
	searcher  services.SearchEngine // engine, possibly behind the result cache
	metrics   *metrics.Metrics
	analytics *analytics.Service
	closers   []func()
}

// loadConfig reads configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if corpusDir != "" {
		cfg.Corpus.Dir = corpusDir
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, internalErrors.NewValidationError("config", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// newApp wires every component from cfg, logging to logOut. A cache that
// cannot be reached is logged and skipped.
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	logger.Setup(logOut, cfg.Logging.Level, cfg.Logging.Format)

	a := &app{cfg: cfg}

	var observer engine.Observer
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(prometheus.NewRegistry())
		observer = a.metrics
	}

	a.analytics = analytics.NewService(analytics.StatsFunc(func() services.IndexStats {
		return a.engine.Stats()
	}))

	engineCfg := engine.Config{
		Source: store.NewDirectoryReader(cfg.Corpus.Extensions, cfg.Corpus.LoadConcurrency),
		Search: search.Settings{
			TopK:            cfg.Search.TopK,
			MaxEditDistance: cfg.Search.MaxEditDistance,
			RocchioAlpha:    cfg.Search.RocchioAlpha,
			RocchioBeta:     cfg.Search.RocchioBeta,
		},
		BuildWorkers: cfg.Corpus.LoadConcurrency,
		JobWorkers:   cfg.Jobs.MaxWorkers,
		Observer:     observer,
		Tracker:      a.analytics,
	}
	if a.metrics != nil {
		engineCfg.JobRecorder = a.metrics
	}

	eng, err := engine.NewEngine(engineCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	a.engine = eng
	a.searcher = eng
	a.closers = append(a.closers, eng.Close)

	if cfg.Cache.Enabled {
		a.enableCache(ctx)
	}
	return a, nil
}

func (a *app) enableCache(ctx context.Context) {
	redisStore, err := cache.NewRedisStore(ctx, cache.RedisConfig{
		Addr:           a.cfg.Cache.Addr,
		Password:       a.cfg.Cache.Password,
		DB:             a.cfg.Cache.DB,
		ConnectRetries: a.cfg.Cache.ConnectRetries,
	})
	if err != nil {
		slog.Warn("result cache unavailable; serving uncached", "addr", a.cfg.Cache.Addr, "error", err)
		return
	}

	var counter cache.Counter
	if a.metrics != nil {
		counter = a.metrics
	}
	a.searcher = cache.NewCachedEngine(a.engine, redisStore, a.cfg.Cache.TTL, counter)
	a.closers = append(a.closers, func() {
		if err := redisStore.Close(); err != nil {
			slog.Error("closing redis", "error", err)
		}
	})
	slog.Info("result cache enabled", "addr", a.cfg.Cache.Addr, "ttl", a.cfg.Cache.TTL)
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
