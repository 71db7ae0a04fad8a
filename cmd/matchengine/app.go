package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/talentbridge/matchengine/internal/accuracy"
	"github.com/talentbridge/matchengine/internal/config"
	"github.com/talentbridge/matchengine/internal/logger"
	"github.com/talentbridge/matchengine/internal/mining"
	"github.com/talentbridge/matchengine/internal/notify"
	"github.com/talentbridge/matchengine/internal/observability"
	"github.com/talentbridge/matchengine/internal/ranking"
	"github.com/talentbridge/matchengine/internal/scoring"
	"github.com/talentbridge/matchengine/internal/store"
)

// app bundles the wired dependencies every command needs
type app struct {
	cfg     config.Config
	log     *zap.Logger
	db      *store.DB
	printer *observability.Printer
}

// newApp loads configuration, builds the logger and connects to the
// database. Callers must Close the returned app.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.Config{}
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	cfg.FromEnv()
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagLogJSON {
		cfg.LogJSON = true
	}
	if flagDebug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		db:      db,
		printer: observability.NewPrinter(os.Stdout),
	}, nil
}

// Close releases the app's connections
func (a *app) Close() {
	a.db.Close()
	_ = a.log.Sync()
}

// rankingService builds the ranking service on the standard profile
func (a *app) rankingService() (*ranking.Service, error) {
	engine, err := scoring.NewEngine(scoring.RankingProfile())
	if err != nil {
		return nil, err
	}
	return ranking.NewService(a.db, a.db, a.db, engine, a.log), nil
}

// miningService builds the mining service, backed by Redis when a URL
// is configured and a process-local cache otherwise
func (a *app) miningService() (*mining.Service, error) {
	var cache mining.Cache
	if a.cfg.RedisURL != "" {
		opts, err := redis.ParseURL(a.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		cache = mining.NewRedisCache(redis.NewClient(opts), mining.DefaultProfileTTL)
	} else {
		cache = mining.NewMemoryCache(mining.DefaultProfileTTL)
	}
	return mining.NewService(a.db, a.db, a.db, cache, a.log), nil
}

// notifyMatcher builds the notification matcher over the configured
// broker
func (a *app) notifyMatcher() (*notify.Matcher, func() error, error) {
	if a.cfg.AMQPURL == "" {
		return nil, nil, fmt.Errorf("AMQP_URL environment variable is required")
	}
	dispatcher, err := notify.NewAMQPDispatcher(a.cfg.AMQPURL, a.cfg.NotifyQueue)
	if err != nil {
		return nil, nil, err
	}
	matcher, err := notify.NewMatcher(a.db, a.db, dispatcher, a.log)
	if err != nil {
		dispatcher.Close()
		return nil, nil, err
	}
	return matcher, dispatcher.Close, nil
}

// accuracyTracker builds the accuracy tracker
func (a *app) accuracyTracker() *accuracy.Tracker {
	return accuracy.NewTracker(a.db, a.db, a.log)
}

// commandContext is the default timeout for one-shot CLI commands
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Minute)
}
