package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/grantpilot/cli/internal/common"
)

// Plans prints the purchasable stages and their prices.
func (a *App) Plans(ctx context.Context) error {
	for _, p := range a.entitlements.Plans() {
		printlnFn(fmt.Sprintf("%-8s $%-5d %s: %s", p.Key, p.PriceUSD, p.Name, p.Tagline))
	}
	return nil
}

// Unlock runs the demo checkout for the given stage and persists the signed
// entitlement record. Already-unlocked stages are reported, not re-bought.
func (a *App) Unlock(ctx context.Context, stageKey string) error {
	ok, err := a.entitlements.IsUnlocked(ctx, stageKey)
	if err != nil && !isUnknownStage(err) {
		return err
	}
	if ok {
		printlnFn("Stage already unlocked:", stageKey)
		return nil
	}

	printlnFn("Processing payment...")
	ent, err := a.entitlements.Unlock(ctx, stageKey)
	if err != nil {
		if isUnknownStage(err) {
			printlnFn("Unknown stage:", stageKey)
			return nil
		}
		a.log.Error(ctx, "checkout failed", "stage", stageKey, "error", err)
		return err
	}

	printlnFn(fmt.Sprintf("Unlocked %s at %s", ent.StageKey, ent.UnlockedAt.Format("2006-01-02 15:04")))
	return nil
}

// Status prints the signed-in user, connectivity mode, staged file counts
// and which stages are currently unlocked. When nobody is signed in, the
// identity cached by the last login is shown instead.
func (a *App) Status(ctx context.Context) error {
	a.mu.Lock()
	email := a.userEmail
	a.mu.Unlock()

	if email == "" {
		printlnFn("Not signed in")
		if cached := a.lastCachedProfile(ctx); cached != nil {
			printlnFn(fmt.Sprintf("Last signed in as %s (%s)", cached.Email, cached.LastLogin.Format("2006-01-02 15:04")))
		}
	} else {
		printlnFn("Signed in as", email)
	}
	if a.Mode != "" {
		printlnFn("Connectivity:", string(a.Mode))
	}

	printlnFn(fmt.Sprintf("Staged files: %d", len(a.uploads.List())))

	for _, p := range a.entitlements.Plans() {
		ok, err := a.entitlements.IsUnlocked(ctx, p.Key)
		if err != nil {
			return err
		}
		state := "locked"
		if ok {
			state = "unlocked"
		}
		printlnFn(fmt.Sprintf("%-8s %s", p.Key, state))
	}
	return nil
}

func (a *App) getStatus() string {
	a.mu.Lock()
	email := a.userEmail
	a.mu.Unlock()

	s := ""
	if email != "" {
		s = email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func isUnknownStage(err error) bool {
	return errors.Is(err, common.ErrUnknownStage)
}
