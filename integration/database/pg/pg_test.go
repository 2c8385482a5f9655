package pg_test

import (
	"context"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtinspect/integration/database/pg"
)

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestMigrateRequiresFS(t *testing.T) {
	t.Parallel()
	err := pg.Migrate(context.Background(), nil, nil, nil)
	assert.ErrorIs(t, err, pg.ErrMigrationsNotProvided)
}

func TestConnectAndMigrateLive(t *testing.T) {
	url := os.Getenv("PG_CONN_URL")
	if url == "" {
		t.Skip("PG_CONN_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.Connect(ctx, pg.Config{ConnectionString: url, RetryAttempts: 1})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, pg.Healthcheck(pool)(ctx))

	migrations := fstest.MapFS{
		"00001_probe.sql": {Data: []byte("-- +goose Up\nCREATE TABLE IF NOT EXISTS pg_probe (id int);\n-- +goose Down\nDROP TABLE pg_probe;\n")},
	}
	assert.NoError(t, pg.Migrate(ctx, pg.DB(pool), migrations, nil))
}
