// Package daemon composes the profile-scoped lead tracker daemon.
package daemon

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Martin212038201938/FunnyFunnel/internal/bus"
	"github.com/Martin212038201938/FunnyFunnel/internal/config"
	"github.com/Martin212038201938/FunnyFunnel/internal/httpapi"
	"github.com/Martin212038201938/FunnyFunnel/internal/lock"
	"github.com/Martin212038201938/FunnyFunnel/internal/logging"
	"github.com/Martin212038201938/FunnyFunnel/internal/profile"
	"github.com/Martin212038201938/FunnyFunnel/internal/research"
	"github.com/Martin212038201938/FunnyFunnel/internal/stepstone"
	"github.com/Martin212038201938/FunnyFunnel/internal/store"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
	ListenAddr  string // optional override; empty = config or loopback default
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideConfig,
			provideBus,
			provideLock,
			provideStore,
			provideResearcher,
			provideScraper,
			provideAPI,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(profile.DaemonLogPath(p.ProfileName), p.ProfileName)
}

func provideConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.Load(profile.ConfigPath())
	if err != nil {
		logger.Info("no config file, using defaults", zap.String("path", profile.ConfigPath()))
		return &config.Config{}
	}
	return cfg
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.ProfileName))
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func provideStore(p Params, logger *zap.Logger) (*store.DB, error) {
	dbPath := profile.DBPath(p.ProfileName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideResearcher(cfg *config.Config, logger *zap.Logger) research.Researcher {
	if cfg.Research.APIKey != "" {
		logger.Info("research backend: perplexity", zap.String("model", cfg.Research.Model))
		return research.NewPerplexityClient(cfg.Research.APIKey, cfg.Research.Model)
	}
	logger.Info("research backend: simulator")
	return research.NewSimulator()
}

func provideScraper(logger *zap.Logger) *stepstone.Scraper {
	return stepstone.New(logger)
}

func provideAPI(cfg *config.Config, db *store.DB, b *bus.Bus, researcher research.Researcher, scraper *stepstone.Scraper, logger *zap.Logger) *httpapi.Server {
	return httpapi.New(httpapi.Params{
		DB:         db,
		Bus:        b,
		Researcher: researcher,
		Searcher:   scraper,
		Log:        logger,
		Sender: research.LetterSender{
			Name:    cfg.SenderName,
			Company: cfg.SenderCompany,
		},
		SearchKeywords: cfg.SearchKeywords,
	})
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			srv.Stop(ctx)
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			return nil
		},
	})
}
