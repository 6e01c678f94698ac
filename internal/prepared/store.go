// Package prepared implements the ephemeral store bridging the prepare and
// submit phases of the authorization handshake. Records are readable at
// most once and evicted unconditionally after a fixed TTL, consumed or not.
package prepared

import (
	"context"
	"errors"

	"github.com/crosslock/fusion-gateway/pkg/types"
)

// ErrNotFound is returned by Consume and signals that the record was never
// stored, already consumed, or evicted by TTL. Callers map it to a replay
// error; the store does not distinguish the three cases.
var ErrNotFound = errors.New("preparation record not found or expired")

// Store is the injectable prepared-order store. The contract is identical
// regardless of backing: Put schedules an unconditional TTL eviction, and
// Consume is the only read path in the production flow - an atomic
// read-and-delete guaranteeing at most one successful submission per
// preparation. Concurrent Consume calls on the same hash yield the record
// to exactly one caller.
type Store interface {
	// Put inserts a record keyed by its preparation hash.
	Put(ctx context.Context, record *types.PreparationRecord) error

	// Consume atomically returns and removes the record, or ErrNotFound.
	Consume(ctx context.Context, preparationHash string) (*types.PreparationRecord, error)

	// Has is a non-destructive existence check, for diagnostics only.
	Has(ctx context.Context, preparationHash string) (bool, error)

	// Close releases store resources.
	Close() error
}
