package stages

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/grantpilot/cli/internal/client/models"
	"github.com/grantpilot/cli/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, stageKey string) (*models.Entitlement, error) {
	var ent models.Entitlement
	var unlockedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT stage_key, token, unlocked_at FROM paid_stages WHERE stage_key = ?`, stageKey).
		Scan(&ent.StageKey, &ent.Token, &unlockedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get paid_stages[%s]: %w", stageKey, err)
	}

	ent.UnlockedAt, err = time.Parse(time.RFC3339, unlockedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse unlocked_at for %s: %w", stageKey, err)
	}
	return &ent, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, ent *models.Entitlement, priceUSD int) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO paid_stages (stage_key, token, unlocked_at) VALUES (?, ?, ?)
			ON CONFLICT(stage_key) DO UPDATE SET token = excluded.token, unlocked_at = excluded.unlocked_at
		`, ent.StageKey, ent.Token, ent.UnlockedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to save paid_stages[%s]: %w", ent.StageKey, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO purchases (stage_key, amount_usd, purchased_at) VALUES (?, ?, ?)
		`, ent.StageKey, priceUSD, ent.UnlockedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to journal purchase for %s: %w", ent.StageKey, err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, stageKey string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM paid_stages WHERE stage_key = ?`, stageKey)
	if err != nil {
		return fmt.Errorf("failed to delete paid_stages[%s]: %w", stageKey, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Entitlement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT stage_key, token, unlocked_at FROM paid_stages ORDER BY stage_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid_stages: %w", err)
	}
	defer rows.Close()

	var result []models.Entitlement
	for rows.Next() {
		var ent models.Entitlement
		var unlockedAt string
		if err := rows.Scan(&ent.StageKey, &ent.Token, &unlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan paid_stages row: %w", err)
		}
		ent.UnlockedAt, err = time.Parse(time.RFC3339, unlockedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse unlocked_at: %w", err)
		}
		result = append(result, ent)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paid_stages rows: %w", err)
	}
	return result, nil
}
