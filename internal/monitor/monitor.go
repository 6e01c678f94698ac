// Package monitor drives a submitted order to a terminal outcome: it polls
// the upstream network, reveals secrets to escrows as their fills become
// claimable, and stops on executed, expired, or refunded.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/crosslock/fusion-gateway/internal/relayer"
	"github.com/crosslock/fusion-gateway/internal/storage"
	"github.com/crosslock/fusion-gateway/pkg/types"
	"go.uber.org/zap"
)

// RelayerAPI is the slice of the upstream client the monitor needs. Test
// mocks implement it alongside relayer.Client.
type RelayerAPI interface {
	GetReadyFills(ctx context.Context, orderHash string) ([]relayer.ReadyFill, error)
	SubmitSecret(ctx context.Context, orderHash, secret string) error
	GetOrderStatus(ctx context.Context, orderHash string) (*types.OrderStatus, error)
}

// Monitor polls one order. Each monitor exclusively owns its secrets; no
// state is shared between monitors of different orders.
type Monitor struct {
	relayer  RelayerAPI
	storage  storage.Storage
	logger   *zap.Logger
	interval time.Duration
	maxFails int

	orderHash string
	secrets   []string
	hashes    []string
	revealed  []bool

	// nudge lets the event feed trigger an immediate poll. The ticker
	// remains the source of truth; a missed nudge costs one interval.
	nudge chan struct{}
}

// Config holds monitor configuration for one order.
type Config struct {
	Relayer      RelayerAPI
	Storage      storage.Storage // optional; enables resumable state
	Logger       *zap.Logger
	PollInterval time.Duration
	OrderHash    string
	Secrets      []string
	SecretHashes []string
	RevealedIdxs []int // non-empty when resuming

	// MaxConsecutiveFailures bounds tolerated transient poll failures.
	// Zero means the default of 10.
	MaxConsecutiveFailures int
}

// New creates a monitor for a submitted order.
func New(cfg *Config) (*Monitor, error) {
	if cfg.OrderHash == "" {
		return nil, types.NewError(types.KindValidation, "order hash is required")
	}
	if len(cfg.Secrets) == 0 {
		return nil, types.NewError(types.KindValidation, "at least one secret is required")
	}

	maxFails := cfg.MaxConsecutiveFailures
	if maxFails <= 0 {
		maxFails = 10
	}

	m := &Monitor{
		relayer:   cfg.Relayer,
		storage:   cfg.Storage,
		logger:    cfg.Logger,
		interval:  cfg.PollInterval,
		maxFails:  maxFails,
		orderHash: cfg.OrderHash,
		secrets:   cfg.Secrets,
		hashes:    cfg.SecretHashes,
		revealed:  make([]bool, len(cfg.Secrets)),
		nudge:     make(chan struct{}, 1),
	}

	for _, idx := range cfg.RevealedIdxs {
		if idx >= 0 && idx < len(m.revealed) {
			m.revealed[idx] = true
		}
	}

	return m, nil
}

// Nudge requests an immediate poll. Safe to call from any goroutine; a
// pending nudge is coalesced.
func (m *Monitor) Nudge() {
	select {
	case m.nudge <- struct{}{}:
		EventNudgesTotal.Inc()
	default:
	}
}

// Run polls until the order reaches a terminal status or ctx is cancelled.
// Cancellation stops further polling without corrupting revealed-secret
// state: everything revealed so far is recorded in storage.
func (m *Monitor) Run(ctx context.Context) (*types.OrderStatus, error) {
	ActiveMonitors.Inc()
	defer ActiveMonitors.Dec()

	m.persistState(ctx)

	m.logger.Info("monitor-started",
		zap.String("order-hash", m.orderHash),
		zap.Int("secret-count", len(m.secrets)),
		zap.Duration("poll-interval", m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	consecutiveFails := 0

	for {
		status, err := m.tick(ctx)
		if err != nil {
			PollErrorsTotal.Inc()
			consecutiveFails++
			m.logger.Warn("monitor-poll-failed",
				zap.String("order-hash", m.orderHash),
				zap.Int("consecutive-failures", consecutiveFails),
				zap.Error(err))

			if consecutiveFails >= m.maxFails {
				return nil, types.WrapError(types.KindStatusFetch, err,
					"order %s: %d consecutive poll failures", m.orderHash, consecutiveFails)
			}
		} else {
			consecutiveFails = 0
			if status != nil {
				m.finish(ctx, status)
				return status, nil
			}
		}

		select {
		case <-ctx.Done():
			m.logger.Info("monitor-cancelled",
				zap.String("order-hash", m.orderHash))
			return nil, ctx.Err()
		case <-ticker.C:
		case <-m.nudge:
		}
	}
}

// tick is one poll iteration: reveal newly claimable secrets, then check
// status. Returns a non-nil status only when it is terminal.
func (m *Monitor) tick(ctx context.Context) (*types.OrderStatus, error) {
	PollsTotal.Inc()

	fills, err := m.relayer.GetReadyFills(ctx, m.orderHash)
	if err != nil {
		return nil, fmt.Errorf("ready fills: %w", err)
	}

	for _, fill := range fills {
		if fill.Idx < 0 || fill.Idx >= len(m.secrets) {
			m.logger.Warn("monitor-fill-index-out-of-range",
				zap.String("order-hash", m.orderHash),
				zap.Int("idx", fill.Idx),
				zap.Int("secret-count", len(m.secrets)))
			continue
		}
		if m.revealed[fill.Idx] {
			continue
		}

		// Irreversible: the upstream only reports fills whose escrow is
		// on-chain and claimable, which is the precondition for revealing.
		err = m.relayer.SubmitSecret(ctx, m.orderHash, m.secrets[fill.Idx])
		if err != nil {
			m.logger.Warn("monitor-secret-submit-failed",
				zap.String("order-hash", m.orderHash),
				zap.Int("idx", fill.Idx),
				zap.Error(err))
			continue
		}

		m.revealed[fill.Idx] = true
		SecretsRevealedTotal.Inc()
		m.logger.Info("monitor-secret-revealed",
			zap.String("order-hash", m.orderHash),
			zap.Int("idx", fill.Idx))
		m.persistState(ctx)
	}

	status, err := m.relayer.GetOrderStatus(ctx, m.orderHash)
	if err != nil {
		return nil, fmt.Errorf("order status: %w", err)
	}

	if status.Status.Terminal() {
		return status, nil
	}

	return nil, nil
}

func (m *Monitor) finish(ctx context.Context, status *types.OrderStatus) {
	TerminalStatusTotal.WithLabelValues(string(status.Status)).Inc()

	m.logger.Info("monitor-finished",
		zap.String("order-hash", m.orderHash),
		zap.String("status", string(status.Status)),
		zap.Int("fills", len(status.Fills)))

	if m.storage == nil {
		return
	}

	err := m.storage.DeleteMonitorState(ctx, m.orderHash)
	if err != nil {
		m.logger.Error("monitor-state-erase-failed",
			zap.String("order-hash", m.orderHash),
			zap.Error(err))
	}
}

func (m *Monitor) persistState(ctx context.Context) {
	if m.storage == nil {
		return
	}

	var revealedIdxs []int
	for idx, done := range m.revealed {
		if done {
			revealedIdxs = append(revealedIdxs, idx)
		}
	}

	err := m.storage.SaveMonitorState(ctx, &storage.MonitorState{
		OrderHash:    m.orderHash,
		Secrets:      m.secrets,
		SecretHashes: m.hashes,
		RevealedIdxs: revealedIdxs,
	})
	if err != nil {
		m.logger.Error("monitor-state-persist-failed",
			zap.String("order-hash", m.orderHash),
			zap.Error(err))
	}
}
