package prepared

import (
	"context"
	"sync"
	"time"

	"github.com/crosslock/fusion-gateway/pkg/types"
	"go.uber.org/zap"
)

// MemoryStore is the single-instance backing: a mutex-guarded map with one
// eviction timer per record.
type MemoryStore struct {
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	closed  bool
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	record *types.PreparationRecord
	timer  *time.Timer
}

// NewMemoryStore creates an in-process store evicting records ttl after
// insertion.
func NewMemoryStore(ttl time.Duration, logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		logger:  logger,
		entries: make(map[string]*memoryEntry),
	}
}

// Put inserts a record and schedules its unconditional eviction.
func (s *MemoryStore) Put(_ context.Context, record *types.PreparationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.NewError(types.KindValidation, "store is closed")
	}

	hash := record.PreparationHash
	if existing, ok := s.entries[hash]; ok {
		// Same hash means identical binding inputs; replace and reset TTL.
		existing.timer.Stop()
		delete(s.entries, hash)
		RecordsGauge.Dec()
	}

	entry := &memoryEntry{record: record}
	entry.timer = time.AfterFunc(s.ttl, func() {
		s.evict(hash)
	})
	s.entries[hash] = entry

	PutsTotal.Inc()
	RecordsGauge.Inc()
	s.logger.Debug("preparation-stored",
		zap.String("preparation-hash", hash),
		zap.Duration("ttl", s.ttl))

	return nil
}

// Consume atomically returns and removes the record. The mutex guarantees
// exactly one concurrent caller wins; the rest get ErrNotFound.
func (s *MemoryStore) Consume(_ context.Context, preparationHash string) (*types.PreparationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[preparationHash]
	if !ok {
		ConsumeMissesTotal.Inc()
		return nil, ErrNotFound
	}

	entry.timer.Stop()
	delete(s.entries, preparationHash)

	ConsumesTotal.Inc()
	RecordsGauge.Dec()
	s.logger.Debug("preparation-consumed",
		zap.String("preparation-hash", preparationHash))

	return entry.record, nil
}

// Has is a non-destructive existence check.
func (s *MemoryStore) Has(_ context.Context, preparationHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[preparationHash]

	return ok, nil
}

// Close stops all eviction timers and drops remaining records.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for hash, entry := range s.entries {
		entry.timer.Stop()
		delete(s.entries, hash)
		RecordsGauge.Dec()
	}

	s.logger.Info("memory-store-closed")

	return nil
}

func (s *MemoryStore) evict(preparationHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[preparationHash]; !ok {
		return
	}

	delete(s.entries, preparationHash)
	ExpiriesTotal.Inc()
	RecordsGauge.Dec()
	s.logger.Debug("preparation-expired",
		zap.String("preparation-hash", preparationHash),
		zap.Duration("ttl", s.ttl))
}
