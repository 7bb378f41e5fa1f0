package profile

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/grantpilot/cli/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	ttl time.Duration
	now func() time.Time
}

// NewSQLiteRepository builds a profile store. ttl <= 0 disables expiry.
func NewSQLiteRepository(db dbx.DBTX, ttl time.Duration) *SQLiteRepository {
	return &SQLiteRepository{db: db, ttl: ttl, now: time.Now}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var updatedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT value, updated_at FROM profile_state WHERE key = ?`, key).
		Scan(&value, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile_state[%s]: %w", key, err)
	}

	if r.ttl > 0 {
		ts, err := time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for %s: %w", key, err)
		}
		if r.now().Sub(ts) > r.ttl {
			return nil, nil
		}
	}

	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profile_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, r.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set profile_state[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profile_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete profile_state[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profile_state`)
	if err != nil {
		return fmt.Errorf("failed to clear profile_state: %w", err)
	}
	return nil
}
