package history

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps records in process memory. Data is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	max     int
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMaxRecords evicts the oldest records beyond n. 0 disables eviction.
func WithMaxRecords(n int) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if n > 0 {
			ms.max = n
		}
	}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

func (ms *MemoryStore) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.records = append(ms.records, rec)
	if ms.max > 0 && len(ms.records) > ms.max {
		ms.records = append([]Record(nil), ms.records[len(ms.records)-ms.max:]...)
	}
	return nil
}

func (ms *MemoryStore) List(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ms.mu.RLock()
	out := make([]Record, len(ms.records))
	// Reverse insertion order breaks timestamp ties newest first.
	for i, rec := range ms.records {
		out[len(out)-1-i] = rec
	}
	ms.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for i, rec := range ms.records {
		if rec.ID == id {
			ms.records = append(ms.records[:i], ms.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Ping always succeeds.
func (ms *MemoryStore) Ping(context.Context) error { return nil }

// Len returns the number of stored records.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.records)
}
