// Package history keeps an append-only log of analyze calls.
//
// The analysis engine itself never touches this package. The HTTP layer
// records one Record per successful analyze call through Service, which
// delegates persistence to a Store. Stores exist for memory (this package),
// MongoDB, PostgreSQL and Redis (integration/history/...).
package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("history record not found")
	ErrInvalidID   = errors.New("invalid history record id")
	ErrNilStore    = errors.New("history store is nil")
	// ErrUnavailable wraps backend failures reported by Store.Ping.
	ErrUnavailable = errors.New("history store unavailable")
)

// Record is one stored analysis.
type Record struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	JWT       string          `json:"jwt_string"`
	Analysis  json.RawMessage `json:"analysis_result"`
}

// Store persists records. Implementations must be safe for concurrent use.
type Store interface {
	// Save appends rec. The ID is assigned by the caller.
	Save(ctx context.Context, rec Record) error
	// List returns at most limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)
	// Delete removes the record with id or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
