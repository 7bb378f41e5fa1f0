package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grantpilot/cli/internal/client/config"
	"github.com/grantpilot/cli/internal/client/progress"
	"github.com/grantpilot/cli/internal/client/repositories/profile"
	"github.com/grantpilot/cli/internal/client/repositories/stages"
	"github.com/grantpilot/cli/internal/client/services"
	"github.com/grantpilot/cli/internal/client/session"
	"github.com/grantpilot/cli/internal/client/storage"
	"github.com/grantpilot/cli/internal/client/transport"
	"github.com/grantpilot/cli/internal/filex"
	"github.com/grantpilot/cli/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config       *config.Config
	log          logging.Logger
	client       transport.Client
	uploads      services.UploadService
	entitlements services.EntitlementService
	watcher      *progress.Watcher
	profiles     profile.Repository

	mu        sync.Mutex
	userEmail string
	token     string

	Mode   Mode
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	dir, err := filex.StateDir("grantpilot")
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, filepath.Join(dir, c.StateFile))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	app := &App{config: c, log: log, reader: bufio.NewReader(os.Stdin)}

	tokens := transport.TokenFunc(func(ctx context.Context) (string, error) {
		return app.currentToken(), nil
	})

	app.client = transport.NewHTTPClient(c.APIBaseURL, tokens, c.RequestTimeout)

	sess := session.NewManager(session.Limits{
		MaxFiles:           c.MaxFiles,
		MaxSizeMB:          c.MaxUploadSizeMB,
		AcceptedExtensions: c.AcceptedExtensions,
	})

	app.uploads = services.NewUploadService(app.client, sess, log, c.UploadResolveTimeout)
	app.entitlements = services.NewEntitlementService(
		stages.NewSQLiteRepository(db), log, []byte(c.CheckoutSecret), c.EntitlementTTL, c.CheckoutDelay)
	app.watcher = progress.NewWatcher(c.APIBaseURL, tokens, log)
	app.profiles = profile.NewSQLiteRepository(db, c.ProfileTTL)

	return app, nil
}

func (a *App) currentToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *App) setCredentials(email, token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userEmail = email
	a.token = token
}

func (a *App) isLoggedIn() bool {
	return a.currentToken() != ""
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	go a.StartOnlineStatusWatcher(ctx, 30*time.Second)
	go a.StartUploadSweeper(ctx, time.Minute)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// StartOnlineStatusWatcher periodically pings the backend and flips Mode
// between online and offline. It returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.client.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// StartUploadSweeper periodically forces candidates stuck in "uploading"
// past the resolve timeout into a terminal error state. It returns when
// ctx is cancelled.
func (a *App) StartUploadSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := a.uploads.SweepOverdue(); n > 0 {
				a.log.Warn(ctx, "swept stuck uploads", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
