package storage

import (
	"context"
	"sync"

	"github.com/crosslock/fusion-gateway/pkg/types"
	"go.uber.org/zap"
)

// ConsoleStorage implements Storage by logging swaps and keeping monitor
// state in memory. Default for local runs; monitor resumability across
// process restarts requires the postgres backend.
type ConsoleStorage struct {
	logger *zap.Logger

	mu     sync.Mutex
	states map[string]MonitorState
}

// NewConsoleStorage creates a new console storage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		logger: logger,
		states: make(map[string]MonitorState),
	}
}

// SaveSwap logs the submitted swap.
func (c *ConsoleStorage) SaveSwap(_ context.Context, record *SwapRecord) error {
	c.logger.Info("swap-submitted",
		zap.String("swap-id", record.ID),
		zap.String("order-hash", record.OrderHash),
		zap.String("wallet", record.Wallet),
		zap.String("quote-id", record.QuoteID),
		zap.String("amount", record.OrderParams.Amount),
		zap.Int64("src-chain", record.OrderParams.SrcChainID),
		zap.Int64("dst-chain", record.OrderParams.DstChainID))

	return nil
}

// UpdateSwapStatus logs the status transition.
func (c *ConsoleStorage) UpdateSwapStatus(_ context.Context, orderHash string, status types.OrderPhase) error {
	c.logger.Info("swap-status",
		zap.String("order-hash", orderHash),
		zap.String("status", string(status)))

	return nil
}

// SaveMonitorState keeps the state in memory. Secrets are deliberately not
// logged.
func (c *ConsoleStorage) SaveMonitorState(_ context.Context, state *MonitorState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[state.OrderHash] = *state

	return nil
}

// LoadMonitorStates returns the in-memory states.
func (c *ConsoleStorage) LoadMonitorStates(_ context.Context) ([]MonitorState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	states := make([]MonitorState, 0, len(c.states))
	for _, state := range c.states {
		states = append(states, state)
	}

	return states, nil
}

// DeleteMonitorState erases the state for a finished order.
func (c *ConsoleStorage) DeleteMonitorState(_ context.Context, orderHash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, orderHash)

	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	return nil
}
