package app

import (
	"context"
	"fmt"

	"github.com/crosslock/fusion-gateway/internal/auth"
	"github.com/crosslock/fusion-gateway/internal/monitor"
	"github.com/crosslock/fusion-gateway/internal/prepared"
	"github.com/crosslock/fusion-gateway/internal/relayer"
	"github.com/crosslock/fusion-gateway/internal/storage"
	"github.com/crosslock/fusion-gateway/internal/swap"
	"github.com/crosslock/fusion-gateway/pkg/config"
	"github.com/crosslock/fusion-gateway/pkg/healthprobe"
	"github.com/crosslock/fusion-gateway/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New()

	relayerClient := setupRelayerClient(cfg, logger)

	preparedStore, err := setupPreparedStore(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup prepared store: %w", err)
	}

	swapStorage, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	var eventFeed *monitor.Feed
	if cfg.MonitorEventsEnable {
		eventFeed = monitor.NewFeed(cfg.RelayerWSURL, logger)
	}

	var monitorManager *monitor.Manager
	if cfg.MonitorEnabled {
		monitorManager = monitor.NewManager(ctx, &monitor.ManagerConfig{
			Relayer:      relayerClient,
			Storage:      swapStorage,
			Logger:       logger,
			PollInterval: cfg.MonitorPollInterval,
			Feed:         eventFeed,
		})
	}

	swapService := setupSwapService(cfg, logger, relayerClient, preparedStore, swapStorage, monitorManager)

	httpServer := httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		SwapService:   swapService,
	})

	return &App{
		cfg:            cfg,
		logger:         logger,
		healthChecker:  healthChecker,
		httpServer:     httpServer,
		relayerClient:  relayerClient,
		preparedStore:  preparedStore,
		swapStorage:    swapStorage,
		monitorManager: monitorManager,
		eventFeed:      eventFeed,
		swapService:    swapService,
		ctx:            ctx,
		cancel:         cancel,
	}, nil
}

func setupRelayerClient(cfg *config.Config, logger *zap.Logger) *relayer.Client {
	return relayer.NewClient(&relayer.Config{
		BaseURL:   cfg.RelayerBaseURL,
		AuthToken: cfg.RelayerAuthToken,
		SourceTag: cfg.SourceTag,
		Timeout:   cfg.RelayerTimeout,
		Logger:    logger,
	})
}

func setupPreparedStore(cfg *config.Config, logger *zap.Logger) (prepared.Store, error) {
	if cfg.StoreMode == "redis" {
		redisStore, err := prepared.NewRedisStore(&prepared.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.PrepareTTL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis store: %w", err)
		}
		return redisStore, nil
	}

	return prepared.NewMemoryStore(cfg.PrepareTTL, logger), nil
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.StorageMode == "postgres" {
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	}

	return storage.NewConsoleStorage(logger), nil
}

func setupSwapService(
	cfg *config.Config,
	logger *zap.Logger,
	relayerClient *relayer.Client,
	preparedStore prepared.Store,
	swapStorage storage.Storage,
	monitorManager *monitor.Manager,
) *swap.Service {
	verifier := auth.NewVerifier(cfg.TimestampMaxAge, cfg.TimestampMaxSkew)

	// A nil interface must stay nil; wrapping a nil *Manager would not be.
	var monitors swap.MonitorStarter
	if monitorManager != nil {
		monitors = monitorManager
	}

	return swap.NewService(&swap.ServiceConfig{
		Relayer:     relayerClient,
		Store:       preparedStore,
		Verifier:    verifier,
		Storage:     swapStorage,
		Monitors:    monitors,
		Logger:      logger,
		TokenSymbol: cfg.DefaultTokenLabel,
	})
}
