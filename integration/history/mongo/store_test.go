package mongo_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtinspect/core/history"
	dbmongo "github.com/dmitrymomot/jwtinspect/integration/database/mongo"
	"github.com/dmitrymomot/jwtinspect/integration/history/mongo"
)

func TestStoreLive(t *testing.T) {
	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("MONGODB_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbmongo.NewWithDatabase(ctx, dbmongo.Config{ConnectionURL: url, ConnectTimeout: 5 * time.Second, RetryAttempts: 1}, "jwtinspect_test")
	require.NoError(t, err)
	defer db.Client().Disconnect(ctx)

	store := mongo.New(db, "history_"+uuid.NewString()[:8])
	require.NoError(t, store.EnsureIndexes(ctx))
	require.NoError(t, store.Ping(ctx))

	base := time.Now().UTC().Truncate(time.Millisecond)
	older := history.Record{ID: uuid.NewString(), Timestamp: base, JWT: "a.b.c", Analysis: json.RawMessage(`{"estructura_valida":true}`)}
	newer := history.Record{ID: uuid.NewString(), Timestamp: base.Add(time.Second), JWT: "x.y", Analysis: json.RawMessage(`{"estructura_valida":false}`)}
	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))

	recs, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, newer.ID, recs[0].ID)
	assert.JSONEq(t, string(older.Analysis), string(recs[1].Analysis))
	assert.True(t, older.Timestamp.Equal(recs[1].Timestamp))

	require.NoError(t, store.Delete(ctx, older.ID))
	assert.ErrorIs(t, store.Delete(ctx, older.ID), history.ErrNotFound)
}
