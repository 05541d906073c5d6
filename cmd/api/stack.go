package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"alfredoptarigan/career-architect/internal/config"
	"alfredoptarigan/career-architect/internal/logger"
	"alfredoptarigan/career-architect/internal/repositories"
	"alfredoptarigan/career-architect/internal/services"
)

type stack struct {
	cfg      *config.Config
	log      *zap.Logger
	registry *prometheus.Registry
	worker   services.Worker
	sessions services.SessionService
	closers  []func()
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("✅ Config loaded successfully",
		zap.String("env", cfg.Server.Env),
		zap.String("session_store", cfg.Session.Store),
		zap.String("model", cfg.Gemini.Model),
	)
	if cfg.Gemini.APIKey == "" {
		log.Warn("⚠️ GEMINI_API_KEY is not set; analyses will fail")
	}
	return cfg, log, nil
}

// openRepository picks the session store named by SESSION_STORE.
func openRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repositories.SessionRepository, func(), error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		client, err := repositories.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("✅ Redis session store connected")
		return repositories.NewRedisSessionRepository(client), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repositories.NewGormSessionRepository(db), closeDB, nil

	default:
		log.Info("✅ In-memory session store initialized")
		return repositories.NewMemorySessionRepository(), func() {}, nil
	}
}

func newStack(ctx context.Context, cfg *config.Config, log *zap.Logger, repo repositories.SessionRepository, concurrency int) (*stack, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewMetrics(registry)

	var validator *services.ResponseValidator
	if cfg.Gemini.StrictValidation {
		v, err := services.NewResponseValidator()
		if err != nil {
			return nil, err
		}
		validator = v
		log.Info("✅ Strict response validation enabled")
	}

	geminiService := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, log)
	analyzer := services.NewAnalyzer(geminiService, validator, log)

	worker := services.NewWorker(analyzer, metrics, log, concurrency)
	worker.Start(ctx)

	sessions := services.NewSessionService(
		repo,
		worker,
		metrics,
		log,
		cfg.Session.TTL,
		cfg.Worker.StaleAfter,
	)

	return &stack{
		cfg:      cfg,
		log:      log,
		registry: registry,
		worker:   worker,
		sessions: sessions,
	}, nil
}

func (s *stack) Close() {
	s.worker.Stop()
	for _, closeFn := range s.closers {
		closeFn()
	}
	_ = s.log.Sync()
}
