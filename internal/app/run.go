package app

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Run starts the application and blocks until shutdown.
func (a *App) Run() error {
	a.logger.Info("application-starting",
		zap.String("store-mode", a.cfg.StoreMode),
		zap.String("storage-mode", a.cfg.StorageMode),
		zap.Bool("monitor-enabled", a.cfg.MonitorEnabled),
		zap.String("log-level", a.cfg.LogLevel))

	// Start all components
	err := a.startComponents()
	if err != nil {
		return err
	}

	// Mark as ready
	a.healthChecker.SetReady(true)
	a.healthChecker.SetComponent("prepared-store", true)
	a.healthChecker.SetComponent("storage", true)

	a.logger.Info("application-ready",
		zap.String("http-addr", ":"+a.cfg.HTTPPort),
		zap.String("relayer-url", a.cfg.RelayerBaseURL))

	// Wait for shutdown signal
	return a.waitForShutdown()
}

func (a *App) startComponents() error {
	// Start HTTP server
	a.wg.Add(1)
	go a.runHTTPServer()

	// Give HTTP server a moment to start
	time.Sleep(100 * time.Millisecond)

	// Start event feed
	if a.eventFeed != nil {
		a.wg.Add(1)
		go a.runEventFeed()
	}

	// Resume persisted monitors
	if a.monitorManager != nil {
		err := a.monitorManager.Resume(a.ctx)
		if err != nil {
			a.logger.Error("monitor-resume-error", zap.Error(err))
		}
	}

	return nil
}

func (a *App) runHTTPServer() {
	defer a.wg.Done()
	err := a.httpServer.Start()
	if err != nil {
		a.logger.Error("http-server-error", zap.Error(err))
	}
}

func (a *App) runEventFeed() {
	defer a.wg.Done()
	a.eventFeed.Run(a.ctx)
}

func (a *App) waitForShutdown() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutdown-signal-received", zap.String("signal", sig.String()))
	case <-a.ctx.Done():
		a.logger.Info("context-cancelled")
	}

	return a.Shutdown()
}
