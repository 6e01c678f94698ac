package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/crosslock/fusion-gateway/internal/storage"
	"github.com/crosslock/fusion-gateway/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Manager runs one monitor per in-flight order. Monitors are fully
// independent; the manager only tracks their lifecycles and resumes
// persisted ones after a restart.
type Manager struct {
	relayer  RelayerAPI
	storage  storage.Storage
	logger   *zap.Logger
	interval time.Duration
	feed     *Feed // nil when the event feed is disabled

	group *errgroup.Group
	gctx  context.Context

	mu     sync.Mutex
	active map[string]*Monitor
}

// ManagerConfig holds manager configuration.
type ManagerConfig struct {
	Relayer      RelayerAPI
	Storage      storage.Storage
	Logger       *zap.Logger
	PollInterval time.Duration
	Feed         *Feed
}

// NewManager creates a monitor manager.
func NewManager(ctx context.Context, cfg *ManagerConfig) *Manager {
	group, gctx := errgroup.WithContext(ctx)

	return &Manager{
		relayer:  cfg.Relayer,
		storage:  cfg.Storage,
		logger:   cfg.Logger,
		interval: cfg.PollInterval,
		feed:     cfg.Feed,
		group:    group,
		gctx:     gctx,
		active:   make(map[string]*Monitor),
	}
}

// Watch starts monitoring a freshly submitted order in the background.
func (mgr *Manager) Watch(orderHash string, secrets, secretHashes []string) error {
	return mgr.watch(orderHash, secrets, secretHashes, nil)
}

// Resume restarts monitors for every persisted in-flight order. Called once
// at startup.
func (mgr *Manager) Resume(ctx context.Context) error {
	states, err := mgr.storage.LoadMonitorStates(ctx)
	if err != nil {
		return err
	}

	for _, state := range states {
		err = mgr.watch(state.OrderHash, state.Secrets, state.SecretHashes, state.RevealedIdxs)
		if err != nil {
			mgr.logger.Error("monitor-resume-failed",
				zap.String("order-hash", state.OrderHash),
				zap.Error(err))
			continue
		}
		mgr.logger.Info("monitor-resumed",
			zap.String("order-hash", state.OrderHash),
			zap.Int("revealed", len(state.RevealedIdxs)))
	}

	return nil
}

func (mgr *Manager) watch(orderHash string, secrets, secretHashes []string, revealedIdxs []int) error {
	mon, err := New(&Config{
		Relayer:      mgr.relayer,
		Storage:      mgr.storage,
		Logger:       mgr.logger,
		PollInterval: mgr.interval,
		OrderHash:    orderHash,
		Secrets:      secrets,
		SecretHashes: secretHashes,
		RevealedIdxs: revealedIdxs,
	})
	if err != nil {
		return err
	}

	mgr.mu.Lock()
	if _, exists := mgr.active[orderHash]; exists {
		mgr.mu.Unlock()
		return types.NewError(types.KindValidation, "order %s is already being monitored", orderHash)
	}
	mgr.active[orderHash] = mon
	mgr.mu.Unlock()

	if mgr.feed != nil {
		mgr.feed.Subscribe(orderHash, mon)
	}

	mgr.group.Go(func() error {
		defer func() {
			mgr.mu.Lock()
			delete(mgr.active, orderHash)
			mgr.mu.Unlock()
			if mgr.feed != nil {
				mgr.feed.Unsubscribe(orderHash)
			}
		}()

		status, err := mon.Run(mgr.gctx)
		if err != nil {
			mgr.logger.Error("monitor-error",
				zap.String("order-hash", orderHash),
				zap.Error(err))
			// One failed monitor must not cancel its siblings.
			return nil
		}

		updateErr := mgr.storage.UpdateSwapStatus(mgr.gctx, orderHash, status.Status)
		if updateErr != nil {
			mgr.logger.Error("swap-status-update-failed",
				zap.String("order-hash", orderHash),
				zap.Error(updateErr))
		}

		return nil
	})

	return nil
}

// ActiveCount returns the number of orders currently monitored.
func (mgr *Manager) ActiveCount() int {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	return len(mgr.active)
}

// Wait blocks until all monitors have finished.
func (mgr *Manager) Wait() error {
	return mgr.group.Wait()
}
