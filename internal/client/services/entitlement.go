package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/grantpilot/cli/internal/client/models"
	"github.com/grantpilot/cli/internal/client/repositories/stages"
	"github.com/grantpilot/cli/internal/common"
	"github.com/grantpilot/cli/internal/logging"
)

// plans lists the purchasable stages. The backend understands exactly these.
var plans = []models.StagePlan{
	{Key: common.StageAnalysis, Name: "Grant Analysis", Tagline: "Deep insights powered by AI", PriceUSD: 199},
	{Key: common.StageApplication, Name: "Full Application", Tagline: "Complete grant writing in 48 hours", PriceUSD: 999},
}

// entitlementClaims is the payload of a stored entitlement token.
type entitlementClaims struct {
	jwt.RegisteredClaims
	Stage string `json:"stage"`
}

// EntitlementService gates paid stages behind locally stored, signed
// entitlement records.
//
// The checkout here is a demo stand-in: no payment processor is contacted
// and the record is signed with a local secret, so this is NOT a security
// boundary. It does, however, enforce integrity and expiry on read: a
// tampered or expired record reads as locked.
type EntitlementService interface {
	// Unlock runs the demo checkout for the stage and persists a signed,
	// TTL-bounded entitlement record.
	Unlock(ctx context.Context, stageKey string) (*models.Entitlement, error)

	// IsUnlocked verifies the stored record's signature and expiry.
	IsUnlocked(ctx context.Context, stageKey string) (bool, error)

	// Plans returns the purchasable stages.
	Plans() []models.StagePlan
}

type entitlementService struct {
	repo          stages.Repository
	log           logging.Logger
	secret        []byte
	ttl           time.Duration
	checkoutDelay time.Duration
	now           func() time.Time
}

func NewEntitlementService(repo stages.Repository, log logging.Logger, secret []byte, ttl, checkoutDelay time.Duration) EntitlementService {
	return &entitlementService{
		repo:          repo,
		log:           log,
		secret:        secret,
		ttl:           ttl,
		checkoutDelay: checkoutDelay,
		now:           time.Now,
	}
}

func planFor(stageKey string) (models.StagePlan, bool) {
	for _, p := range plans {
		if p.Key == stageKey {
			return p, true
		}
	}
	return models.StagePlan{}, false
}

func (s *entitlementService) Plans() []models.StagePlan {
	out := make([]models.StagePlan, len(plans))
	copy(out, plans)
	return out
}

func (s *entitlementService) Unlock(ctx context.Context, stageKey string) (*models.Entitlement, error) {
	plan, ok := planFor(stageKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownStage, stageKey)
	}

	// emulate checkout processing; a real gateway round-trip goes here
	select {
	case <-time.After(s.checkoutDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	unlockedAt := s.now()

	token, err := s.signToken(stageKey, unlockedAt)
	if err != nil {
		return nil, fmt.Errorf("signing entitlement: %w", err)
	}

	ent := &models.Entitlement{
		StageKey:   stageKey,
		Token:      token,
		UnlockedAt: unlockedAt,
	}

	if err := s.repo.Save(ctx, ent, plan.PriceUSD); err != nil {
		return nil, fmt.Errorf("saving entitlement: %w", err)
	}

	s.log.Info(ctx, "stage unlocked", "stage", stageKey, "valid_until", unlockedAt.Add(s.ttl))
	return ent, nil
}

func (s *entitlementService) IsUnlocked(ctx context.Context, stageKey string) (bool, error) {
	ent, err := s.repo.Get(ctx, stageKey)
	if err != nil {
		return false, fmt.Errorf("reading entitlement: %w", err)
	}
	if ent == nil {
		return false, nil
	}

	claims := &entitlementClaims{}
	token, err := jwt.ParseWithClaims(ent.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		s.log.Warn(ctx, "entitlement record rejected", "stage", stageKey, "error", err)
		return false, nil
	}

	if claims.Stage != stageKey {
		s.log.Warn(ctx, "entitlement stage mismatch", "stage", stageKey, "claim", claims.Stage)
		return false, nil
	}

	return true, nil
}

func (s *entitlementService) signToken(stageKey string, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, entitlementClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
		Stage: stageKey,
	})
	return token.SignedString(s.secret)
}
