// Package progress consumes the backend's generation progress stream
// (Server-Sent Events) and delivers updates to the caller.
package progress

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/grantpilot/cli/internal/client/models"
	"github.com/grantpilot/cli/internal/client/transport"
	"github.com/grantpilot/cli/internal/logging"
)

const (
	progressPath = "/api/v1/stage4/progress"

	// reconnect policy for broken streams
	maxReconnects    = 5
	reconnectBase    = 1 * time.Second
	reconnectCeiling = 10 * time.Second
)

// Watcher follows one application's stage-4 progress stream until the run
// completes, fails, or the context is cancelled. Broken connections are
// re-established with exponential backoff.
type Watcher struct {
	baseURL string
	tokens  transport.TokenProvider
	log     logging.Logger
	http    *http.Client
}

func NewWatcher(baseURL string, tokens transport.TokenProvider, log logging.Logger) *Watcher {
	return &Watcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     log,
		// no overall timeout: the stream lives as long as the run does
		http: &http.Client{},
	}
}

// Watch streams updates for applicationID, invoking onUpdate for each one,
// and returns the terminal update (status "completed" or "error"). A stream
// that drops before a terminal update is retried up to maxReconnects times.
func (w *Watcher) Watch(ctx context.Context, applicationID string, onUpdate func(models.ProgressUpdate)) (*models.ProgressUpdate, error) {
	var final *models.ProgressUpdate

	backoff := retry.WithMaxRetries(maxReconnects,
		retry.WithCappedDuration(reconnectCeiling, retry.NewExponential(reconnectBase)))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		f, err := w.stream(ctx, applicationID, onUpdate)
		if err != nil {
			w.log.Warn(ctx, "progress stream interrupted", "application_id", applicationID, "error", err)
			return retry.RetryableError(err)
		}
		final = f
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("following progress for %s: %w", applicationID, err)
	}

	return final, nil
}

// stream runs one SSE connection to its terminal update.
func (w *Watcher) stream(ctx context.Context, applicationID string, onUpdate func(models.ProgressUpdate)) (*models.ProgressUpdate, error) {
	token, err := w.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining access token: %w", err)
	}

	endpoint := fmt.Sprintf("%s%s/%s?token=%s",
		w.baseURL, progressPath, url.PathEscape(applicationID), url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := w.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transport.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", transport.ErrUnavailable, resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}

		var update models.ProgressUpdate
		if err := json.Unmarshal([]byte(payload), &update); err != nil {
			w.log.Warn(ctx, "skipping malformed progress event", "error", err)
			continue
		}

		if onUpdate != nil {
			onUpdate(update)
		}

		if update.Status == models.ProgressCompleted || update.Status == models.ProgressError {
			return &update, nil
		}
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading progress stream: %w", err)
	}

	// server closed the stream without a terminal update
	return nil, fmt.Errorf("progress stream ended before completion")
}
