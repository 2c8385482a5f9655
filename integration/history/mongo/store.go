// Package mongo stores analysis history in a MongoDB collection, one
// document per analyze call, the layout the original service used.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/dmitrymomot/jwtinspect/core/history"
)

// DefaultCollection is the collection used when none is configured.
const DefaultCollection = "analysis_history"

type document struct {
	ID        string    `bson:"_id"`
	Timestamp time.Time `bson:"timestamp"`
	JWT       string    `bson:"jwt_string"`
	Analysis  string    `bson:"analysis_result"`
}

// Store implements history.Store on a MongoDB collection.
type Store struct {
	coll *mongo.Collection
}

// New returns a Store writing to name in db. An empty name selects
// DefaultCollection.
func New(db *mongo.Database, name string) *Store {
	if name == "" {
		name = DefaultCollection
	}
	return &Store{coll: db.Collection(name)}
}

// EnsureIndexes creates the descending timestamp index used by List.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongo history: create index: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, rec history.Record) error {
	_, err := s.coll.InsertOne(ctx, document{
		ID:        rec.ID,
		Timestamp: rec.Timestamp.UTC(),
		JWT:       rec.JWT,
		Analysis:  string(rec.Analysis),
	})
	return err
}

func (s *Store) List(ctx context.Context, limit int) ([]history.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]history.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, history.Record{
			ID:        d.ID,
			Timestamp: d.Timestamp,
			JWT:       d.JWT,
			Analysis:  []byte(d.Analysis),
		})
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return history.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return errors.Join(history.ErrUnavailable, err)
	}
	return nil
}
