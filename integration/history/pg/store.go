// Package pg stores analysis history in PostgreSQL.
//
// The schema ships as embedded goose migrations; apply them with
// pg.Migrate from integration/database/pg before using the Store.
package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io/fs"

	"github.com/google/uuid"

	"github.com/dmitrymomot/jwtinspect/core/history"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema migrations rooted at the migrations dir.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	insertRecord = `INSERT INTO analysis_history (id, created_at, jwt_string, analysis_result) VALUES ($1, $2, $3, $4)`
	selectAll    = `SELECT id, created_at, jwt_string, analysis_result FROM analysis_history ORDER BY created_at DESC`
	selectLimit  = selectAll + ` LIMIT $1`
	deleteRecord = `DELETE FROM analysis_history WHERE id = $1`
)

// Store implements history.Store on a *sql.DB.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, rec history.Record) error {
	if _, err := uuid.Parse(rec.ID); err != nil {
		return errors.Join(history.ErrInvalidID, err)
	}
	_, err := s.db.ExecContext(ctx, insertRecord, rec.ID, rec.Timestamp.UTC(), rec.JWT, string(rec.Analysis))
	return err
}

func (s *Store) List(ctx context.Context, limit int) ([]history.Record, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, selectLimit, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, selectAll)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []history.Record{}
	for rows.Next() {
		var (
			rec      history.Record
			analysis string
		)
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.JWT, &analysis); err != nil {
			return nil, err
		}
		rec.Analysis = []byte(analysis)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete rejects ids that are not UUIDs with history.ErrInvalidID.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Join(history.ErrInvalidID, err)
	}
	res, err := s.db.ExecContext(ctx, deleteRecord, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return history.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.Join(history.ErrUnavailable, err)
	}
	return nil
}
