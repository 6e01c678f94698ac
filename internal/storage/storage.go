// Package storage persists submitted swaps and completion-monitor state.
// Monitor state is what makes monitoring resumable: losing it after a crash
// would strand funds-in-flight with no way to reveal the remaining secrets.
package storage

import (
	"context"
	"time"

	"github.com/crosslock/fusion-gateway/pkg/types"
)

// SwapRecord is the durable trace of one swap through the gateway.
type SwapRecord struct {
	ID              string
	OrderHash       string
	PreparationHash string
	Wallet          string
	QuoteID         string
	OrderParams     types.OrderParams
	Status          types.OrderPhase
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MonitorState is the minimum state needed to resume completion monitoring
// after a restart. Secrets live here only while the order is in flight;
// Delete erases them once a terminal status is reached.
type MonitorState struct {
	OrderHash    string
	Secrets      []string
	SecretHashes []string
	RevealedIdxs []int
	UpdatedAt    time.Time
}

// Storage is the interface for persisting swaps and monitor state.
type Storage interface {
	// SaveSwap stores a newly submitted swap.
	SaveSwap(ctx context.Context, record *SwapRecord) error

	// UpdateSwapStatus records a status transition for an order.
	UpdateSwapStatus(ctx context.Context, orderHash string, status types.OrderPhase) error

	// SaveMonitorState upserts the monitor state for an order.
	SaveMonitorState(ctx context.Context, state *MonitorState) error

	// LoadMonitorStates returns all in-flight monitor states.
	LoadMonitorStates(ctx context.Context) ([]MonitorState, error)

	// DeleteMonitorState erases the monitor state (and its secrets) for an
	// order that reached a terminal status.
	DeleteMonitorState(ctx context.Context, orderHash string) error

	// Close closes the storage connection.
	Close() error
}
