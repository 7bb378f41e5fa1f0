// Package models defines client-side data models used by the GrantPilot CLI.
package models

import "time"

// UploadStatus classifies where a candidate is in its upload lifecycle.
type UploadStatus string

const (
	StatusPending   UploadStatus = "pending"
	StatusUploading UploadStatus = "uploading"
	StatusSuccess   UploadStatus = "success"
	StatusError     UploadStatus = "error"
)

// Terminal reports whether the status admits no further transition.
// StatusError may only be left by explicitly re-adding the file.
func (s UploadStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusError
}

// LocalFile describes a file the user selected for upload, before admission.
type LocalFile struct {
	// Path is the location of the file on the local filesystem.
	Path string

	// Name is the base name presented to the backend.
	Name string

	// SizeBytes is the file size as reported by the filesystem.
	SizeBytes int64
}

// UploadCandidate is one user-selected file tracked by the session manager.
// Exactly one candidate exists per selected file; removing it from the list
// is the only destructor.
type UploadCandidate struct {
	// ID is an opaque unique identifier generated at selection time.
	ID string

	// Name, SizeBytes and Extension are copied from the selected file.
	Name      string
	SizeBytes int64
	Extension string

	// Path is kept so the transport can stream the file at submit time.
	Path string

	// Status is the current lifecycle state. Initial state is StatusPending;
	// candidates failing local validation are admitted as StatusError.
	Status UploadStatus

	// ErrorMessage is set only when Status is StatusError.
	ErrorMessage string

	// RemoteURL is set only when Status is StatusSuccess.
	RemoteURL string

	// BatchID correlates the candidate with the submit call that sent it.
	BatchID string

	// SentAt is the time the candidate entered StatusUploading.
	SentAt time.Time
}
