// Package transport contains the client-side building blocks for talking to
// the GrantPilot backend.
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): batch
//     upload of selected documents and a liveness probe.
//  2. A concrete HTTP implementation (see HTTPClient) that submits one
//     multipart request per batch, injects the access token as a Bearer
//     header, and maps HTTP outcomes to sentinel errors.
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized.
//
// All operations accept context.Context and honor cancellation/timeouts.
package transport

import (
	"context"
	"errors"

	"github.com/grantpilot/cli/internal/client/models"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// TokenProvider supplies the access token attached to outbound requests.
// The CLI stores the token captured at login; other callers may refresh it.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a plain function to the TokenProvider interface.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Client is the API contract for the upload backend.
type Client interface {
	// Upload submits all given candidates as one multipart batch and
	// returns the per-file results echoed by the server.
	Upload(ctx context.Context, files []*models.UploadCandidate) ([]models.UploadedFile, error)

	// Ping checks backend liveness.
	Ping(ctx context.Context) error

	Close() error
}
