// Package redis stores analysis history in Redis.
//
// Records live in one hash keyed by record id. A sorted set scored by
// timestamp (microseconds) gives the newest-first ordering List needs.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/jwtinspect/core/history"
)

// Store implements history.Store on a redis.UniversalClient.
type Store struct {
	client   redis.UniversalClient
	records  string
	timeline string
}

// New returns a Store whose keys are namespaced by prefix.
func New(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "jwtinspect"
	}
	return &Store{
		client:   client,
		records:  prefix + ":history:records",
		timeline: prefix + ":history:timeline",
	}
}

func (s *Store) Save(ctx context.Context, rec history.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis history: encode record: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.records, rec.ID, data)
		pipe.ZAdd(ctx, s.timeline, redis.Z{
			Score:  float64(rec.Timestamp.UnixMicro()),
			Member: rec.ID,
		})
		return nil
	})
	return err
}

func (s *Store) List(ctx context.Context, limit int) ([]history.Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := s.client.ZRevRange(ctx, s.timeline, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([]history.Record, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	values, err := s.client.HMGet(ctx, s.records, ids...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a record; skip it
			continue
		}
		var rec history.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("redis history: decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	var removed *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.HDel(ctx, s.records, id)
		pipe.ZRem(ctx, s.timeline, id)
		return nil
	})
	if err != nil {
		return err
	}
	if removed.Val() == 0 {
		return history.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Join(history.ErrUnavailable, err)
	}
	return nil
}
