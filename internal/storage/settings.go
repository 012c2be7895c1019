package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// settingsID is the primary key of the only row in the config table
const settingsID = 1

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GetSettings reads the whole settings document
func (r *Repository) GetSettings(ctx context.Context) (*Settings, error) {
	return r.loadSettings(ctx, r.db)
}

// UpdateSettings reads the document, applies fn and writes the result back in
// one transaction. If fn returns an error nothing is written.
func (r *Repository) UpdateSettings(ctx context.Context, fn func(*Settings) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	s, err := r.loadSettings(ctx, tx)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := r.storeSettings(ctx, tx, s); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}

func (r *Repository) loadSettings(ctx context.Context, q queryRower) (*Settings, error) {
	var raw []byte
	err := q.QueryRowContext(ctx,
		`SELECT config FROM config WHERE id = $1`,
		settingsID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		// The migration always creates the row; treat a missing one as empty
		s := &Settings{}
		s.normalize()
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s := &Settings{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	s.normalize()
	return s, nil
}

func (r *Repository) storeSettings(ctx context.Context, e execer, s *Settings) error {
	s.normalize()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	_, err = e.ExecContext(ctx,
		`INSERT INTO config (id, config) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET config = excluded.config`,
		settingsID, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
