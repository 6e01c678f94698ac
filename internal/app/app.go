package app

import (
	"context"
	"sync"

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

// App is the main application orchestrator.
type App struct {
	cfg            *config.Config
	logger         *zap.Logger
	healthChecker  *healthprobe.HealthChecker
	httpServer     *httpserver.Server
	relayerClient  *relayer.Client
	preparedStore  prepared.Store
	swapStorage    storage.Storage
	monitorManager *monitor.Manager
	eventFeed      *monitor.Feed
	swapService    *swap.Service
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
}
