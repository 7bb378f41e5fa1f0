package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/grantpilot/cli/internal/client/repositories/profile"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// cachedProfile is the payload stored under profile.KeyProfileData. It
// outlives the process (subject to the store's TTL) so a later session can
// show who was signed in last.
type cachedProfile struct {
	Email     string    `json:"email"`
	LastLogin time.Time `json:"last_login"`
}

// Login prompts the user for an email and an API token and stores both for
// the session. The token is read without echo and kept in memory only; the
// email and login time are cached in the local profile store so later
// sessions can show who was signed in last.
//
// After storing the credentials the backend is pinged once to set the
// initial connectivity Mode. A failed ping does not fail the login: the
// user may be working ahead of connectivity.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	token, err := getSecret("Enter API token", os.Stdout)
	if err != nil {
		return err
	}

	a.setCredentials(email, string(token))
	a.cacheProfile(ctx, email)

	if err := a.client.Ping(ctx); err != nil {
		a.log.Warn(ctx, "backend unreachable", "error", err)
		a.setMode(ctx, ModeOffline)
	} else {
		a.setMode(ctx, ModeOnline)
	}

	printlnFn("Signed in as", email)
	return nil
}

// Logout drops the in-memory credentials and wipes cached profile state.
// Entitlement records survive a logout: they were paid for.
func (a *App) Logout(ctx context.Context) error {
	if err := a.profiles.Clear(ctx); err != nil {
		return err
	}
	a.setCredentials("", "")
	printlnFn("Signed out")
	return nil
}

// cacheProfile records the signed-in identity in the local profile store.
// Failures are logged, not fatal: the cache is a convenience.
func (a *App) cacheProfile(ctx context.Context, email string) {
	if err := a.profiles.Set(ctx, profile.KeyCurrentProfileID, []byte(email)); err != nil {
		a.log.Warn(ctx, "caching profile id failed", "error", err)
		return
	}

	data, err := json.Marshal(cachedProfile{Email: email, LastLogin: time.Now()})
	if err != nil {
		a.log.Warn(ctx, "encoding cached profile failed", "error", err)
		return
	}
	if err := a.profiles.Set(ctx, profile.KeyProfileData, data); err != nil {
		a.log.Warn(ctx, "caching profile data failed", "error", err)
	}
}

// lastCachedProfile loads the profile cached by a previous login. Returns
// nil when nothing usable is cached (absent, expired, or undecodable).
func (a *App) lastCachedProfile(ctx context.Context) *cachedProfile {
	data, err := a.profiles.Get(ctx, profile.KeyProfileData)
	if err != nil {
		a.log.Warn(ctx, "reading cached profile failed", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var cached cachedProfile
	if err := json.Unmarshal(data, &cached); err != nil {
		a.log.Warn(ctx, "decoding cached profile failed", "error", err)
		return nil
	}
	return &cached
}
