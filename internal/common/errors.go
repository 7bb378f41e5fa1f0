// Package common defines shared constants and sentinel errors used across
// the GrantPilot client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Upload admission errors.
	ErrTooManyFiles    = errors.New("too many files")
	ErrNothingToUpload = errors.New("nothing to upload")

	// Upload lifecycle errors.
	ErrUploadInFlight = errors.New("an upload is already in flight")

	// Entitlement errors.
	ErrUnknownStage = errors.New("unknown stage")
)
