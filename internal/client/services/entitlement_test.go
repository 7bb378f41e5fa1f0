package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/grantpilot/cli/internal/client/repositories/stages"
	"github.com/grantpilot/cli/internal/common"
)

func setupStagesDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE paid_stages (
  stage_key   TEXT PRIMARY KEY,
  token       TEXT NOT NULL,
  unlocked_at TEXT NOT NULL
);

CREATE TABLE purchases (
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  stage_key    TEXT NOT NULL,
  amount_usd   INTEGER NOT NULL,
  purchased_at TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func newEntitlementService(t *testing.T, db *sql.DB, ttl time.Duration) *entitlementService {
	t.Helper()
	svc := NewEntitlementService(
		stages.NewSQLiteRepository(db),
		testLogger(),
		[]byte("test-secret"),
		ttl,
		time.Millisecond, // keep the demo checkout delay short in tests
	)
	return svc.(*entitlementService)
}

func TestUnlock_ThenIsUnlocked(t *testing.T) {
	svc := newEntitlementService(t, setupStagesDB(t), time.Hour)
	ctx := context.Background()

	start := time.Now()
	ent, err := svc.Unlock(ctx, common.StageAnalysis)
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), time.Millisecond, "checkout delay must elapse")
	require.NotEmpty(t, ent.Token)

	ok, err := svc.IsUnlocked(ctx, common.StageAnalysis)
	require.NoError(t, err)
	assert.True(t, ok)

	// the other stage stays locked
	ok, err = svc.IsUnlocked(ctx, common.StageApplication)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnlock_UnknownStage(t *testing.T) {
	svc := newEntitlementService(t, setupStagesDB(t), time.Hour)

	_, err := svc.Unlock(context.Background(), "stage99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnknownStage))
}

func TestUnlock_ContextCancelledDuringCheckout(t *testing.T) {
	db := setupStagesDB(t)
	svc := NewEntitlementService(stages.NewSQLiteRepository(db), testLogger(), []byte("s"), time.Hour, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Unlock(ctx, common.StageAnalysis)
	require.Error(t, err)

	ok, err := svc.IsUnlocked(context.Background(), common.StageAnalysis)
	require.NoError(t, err)
	assert.False(t, ok, "cancelled checkout must not unlock")
}

func TestIsUnlocked_ExpiredEntitlementReadsAsLocked(t *testing.T) {
	svc := newEntitlementService(t, setupStagesDB(t), time.Hour)
	ctx := context.Background()

	base := time.Now()
	svc.now = func() time.Time { return base }

	_, err := svc.Unlock(ctx, common.StageApplication)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(30 * time.Minute) }
	ok, err := svc.IsUnlocked(ctx, common.StageApplication)
	require.NoError(t, err)
	assert.True(t, ok)

	svc.now = func() time.Time { return base.Add(2 * time.Hour) }
	ok, err = svc.IsUnlocked(ctx, common.StageApplication)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsUnlocked_TamperedRecordReadsAsLocked(t *testing.T) {
	db := setupStagesDB(t)
	svc := newEntitlementService(t, db, time.Hour)
	ctx := context.Background()

	ent, err := svc.Unlock(ctx, common.StageAnalysis)
	require.NoError(t, err)

	// flip part of the signature
	tampered := ent.Token[:len(ent.Token)-2] + strings.Repeat("A", 2)
	_, err = db.Exec(`UPDATE paid_stages SET token = ? WHERE stage_key = ?`, tampered, common.StageAnalysis)
	require.NoError(t, err)

	ok, err := svc.IsUnlocked(ctx, common.StageAnalysis)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsUnlocked_WrongSecretReadsAsLocked(t *testing.T) {
	db := setupStagesDB(t)
	svc := newEntitlementService(t, db, time.Hour)
	ctx := context.Background()

	_, err := svc.Unlock(ctx, common.StageAnalysis)
	require.NoError(t, err)

	other := NewEntitlementService(stages.NewSQLiteRepository(db), testLogger(), []byte("other-secret"), time.Hour, time.Millisecond)
	ok, err := other.IsUnlocked(ctx, common.StageAnalysis)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlans_ListsKnownStages(t *testing.T) {
	svc := newEntitlementService(t, setupStagesDB(t), time.Hour)

	plans := svc.Plans()
	require.Len(t, plans, 2)
	assert.Equal(t, common.StageAnalysis, plans[0].Key)
	assert.Equal(t, 199, plans[0].PriceUSD)
	assert.Equal(t, common.StageApplication, plans[1].Key)
	assert.Equal(t, 999, plans[1].PriceUSD)
}
