package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service assigns identity and time to analyses and hands them to a Store.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
	limit int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithListLimit caps the number of records List returns.
func WithListLimit(n int) ServiceOption {
	return func(s *Service) {
		s.limit = n
	}
}

// NewService wraps store. It returns ErrNilStore when store is nil.
func NewService(store Store, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	s := &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		limit: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Record stores the serialized analysis of token and returns the new record.
func (s *Service) Record(ctx context.Context, token string, analysis json.Marshaler) (Record, error) {
	data, err := analysis.MarshalJSON()
	if err != nil {
		return Record{}, fmt.Errorf("history: encode analysis: %w", err)
	}
	rec := Record{
		ID:        s.newID(),
		Timestamp: s.now(),
		JWT:       token,
		Analysis:  data,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("history: save: %w", err)
	}
	return rec, nil
}

// List returns the newest records up to the configured limit. The result is
// never nil.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	recs, err := s.store.List(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	if recs == nil {
		recs = []Record{}
	}
	return recs, nil
}

// Delete removes one record. Unknown ids yield ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("history: delete %s: %w", id, err)
	}
	return nil
}

// Ping checks the underlying store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
