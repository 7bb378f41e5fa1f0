// Package stages persists unlocked-stage entitlement records and their
// purchase journal in the client's local database.
package stages

import (
	"context"

	"github.com/grantpilot/cli/internal/client/models"
)

type Repository interface {
	// Get returns the stored entitlement for the stage, or (nil, nil) when
	// no record exists.
	Get(ctx context.Context, stageKey string) (*models.Entitlement, error)

	// Save upserts the entitlement and appends a purchase journal row in
	// one transaction.
	Save(ctx context.Context, ent *models.Entitlement, priceUSD int) error

	// Delete removes the entitlement record; absent keys are a no-op.
	Delete(ctx context.Context, stageKey string) error

	// List returns all stored entitlements.
	List(ctx context.Context) ([]models.Entitlement, error)
}
