package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	a.logger.Info("application-shutting-down")

	a.healthChecker.SetReady(false)

	// Cancel context to signal all components
	a.cancel()

	// Shutdown components in dependency order
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server
	err := a.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.Error("http-server-shutdown-error", zap.Error(err))
	}

	// Wait for in-flight monitors to persist their state and stop
	if a.monitorManager != nil {
		err = a.monitorManager.Wait()
		if err != nil {
			a.logger.Error("monitor-manager-shutdown-error", zap.Error(err))
		}
	}

	// Close prepared-order store
	err = a.preparedStore.Close()
	if err != nil {
		a.logger.Error("prepared-store-close-error", zap.Error(err))
	}

	// Close storage
	err = a.swapStorage.Close()
	if err != nil {
		a.logger.Error("storage-close-error", zap.Error(err))
	}

	// Wait for all goroutines
	a.wg.Wait()

	a.logger.Info("application-shutdown-complete")

	return nil
}
