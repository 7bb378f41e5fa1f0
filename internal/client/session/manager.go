// Package session owns the in-memory list of upload candidates and enforces
// admission rules before anything reaches the transport layer.
package session

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grantpilot/cli/internal/client/models"
	"github.com/grantpilot/cli/internal/common"
)

// Limits configures the admission rules for a session.
type Limits struct {
	// MaxFiles is the largest candidate count the session will hold.
	MaxFiles int

	// MaxSizeMB is the largest admissible file size, in megabytes.
	MaxSizeMB int64

	// AcceptedExtensions lists allowed file extensions, dot included
	// (".pdf", ".docx", ...). Matching is case-insensitive.
	AcceptedExtensions []string
}

// Manager maintains the authoritative candidate list. Status transitions are
// monotonic: pending -> uploading -> success|error. Candidates that fail
// local validation enter the list directly as error so the user can see why,
// and are never handed to the transport.
//
// Safe for concurrent use.
type Manager struct {
	mu         sync.Mutex
	limits     Limits
	candidates []*models.UploadCandidate
	now        func() time.Time
}

func NewManager(limits Limits) *Manager {
	return &Manager{limits: limits, now: time.Now}
}

// Add admits a batch of selected files. If the batch would push the list
// past MaxFiles, the whole batch is rejected with common.ErrTooManyFiles and
// the list is left unchanged (no partial admission). Otherwise every file is
// admitted; files failing validation get StatusError with a descriptive
// message. Returns a snapshot of the full list.
func (m *Manager) Add(files []models.LocalFile) ([]*models.UploadCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.candidates)+len(files) > m.limits.MaxFiles {
		return nil, fmt.Errorf("maximum %d files allowed: %w", m.limits.MaxFiles, common.ErrTooManyFiles)
	}

	for _, f := range files {
		c := &models.UploadCandidate{
			ID:        uuid.NewString(),
			Name:      f.Name,
			SizeBytes: f.SizeBytes,
			Extension: strings.ToLower(filepath.Ext(f.Name)),
			Path:      f.Path,
			Status:    models.StatusPending,
		}
		if msg := m.validate(f); msg != "" {
			c.Status = models.StatusError
			c.ErrorMessage = msg
		}
		m.candidates = append(m.candidates, c)
	}

	return m.snapshotLocked(), nil
}

// validate returns "" for admissible files, or a user-facing reason.
func (m *Manager) validate(f models.LocalFile) string {
	if f.SizeBytes > m.limits.MaxSizeMB*1024*1024 {
		return fmt.Sprintf("File size must be less than %dMB", m.limits.MaxSizeMB)
	}

	if len(m.limits.AcceptedExtensions) > 0 {
		ext := strings.ToLower(filepath.Ext(f.Name))
		for _, accepted := range m.limits.AcceptedExtensions {
			if ext == strings.ToLower(strings.TrimSpace(accepted)) {
				return ""
			}
		}
		return fmt.Sprintf("File type not accepted. Allowed: %s", strings.Join(m.limits.AcceptedExtensions, ","))
	}

	return ""
}

// Remove deletes the candidate with the given id. Deletion is idempotent:
// removing an absent id is a no-op. Returns a snapshot of the list.
func (m *Manager) Remove(id string) []*models.UploadCandidate {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.candidates[:0]
	for _, c := range m.candidates {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.candidates = kept

	return m.snapshotLocked()
}

// List returns a snapshot of all candidates in insertion order.
func (m *Manager) List() []*models.UploadCandidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Pending returns the candidates eligible for transport.
func (m *Manager) Pending() []*models.UploadCandidate {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pending []*models.UploadCandidate
	for _, c := range m.candidates {
		if c.Status == models.StatusPending {
			pending = append(pending, copyOf(c))
		}
	}
	return pending
}

// BeginBatch stamps every pending candidate with a fresh correlation id,
// moves it to StatusUploading and records the send time. Returns the batch
// id and the batch members. When nothing is pending it returns
// common.ErrNothingToUpload.
func (m *Manager) BeginBatch() (string, []*models.UploadCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	batchID := uuid.NewString()
	sentAt := m.now()

	var batch []*models.UploadCandidate
	for _, c := range m.candidates {
		if c.Status != models.StatusPending {
			continue
		}
		c.Status = models.StatusUploading
		c.BatchID = batchID
		c.SentAt = sentAt
		batch = append(batch, copyOf(c))
	}

	if len(batch) == 0 {
		return "", nil, common.ErrNothingToUpload
	}

	return batchID, batch, nil
}

// Reconcile matches server results back to the batch by filename: matched
// candidates become StatusSuccess and receive their remote URL. Candidates
// of the batch not echoed by the server stay StatusUploading (the caller
// sweeps them later). Server filenames matching no known candidate are
// returned in unmatched and otherwise tolerated.
func (m *Manager) Reconcile(batchID string, results []models.UploadedFile) (matched int, unmatched []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byName := make(map[string]*models.UploadCandidate)
	for _, c := range m.candidates {
		if c.BatchID == batchID && c.Status == models.StatusUploading {
			byName[c.Name] = c
		}
	}

	for _, r := range results {
		c, ok := byName[r.Filename]
		if !ok {
			unmatched = append(unmatched, r.Filename)
			continue
		}
		c.Status = models.StatusSuccess
		c.RemoteURL = r.URL
		c.ErrorMessage = ""
		matched++
	}

	return matched, unmatched
}

// FailBatch forces every still-uploading member of the batch to StatusError
// with the given message. Used on transport failure, where no per-file
// verdict exists (all-or-nothing per batch).
func (m *Manager) FailBatch(batchID string, msg string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	failed := 0
	for _, c := range m.candidates {
		if c.BatchID == batchID && !c.Status.Terminal() {
			c.Status = models.StatusError
			c.ErrorMessage = msg
			failed++
		}
	}
	return failed
}

// SweepStale forces batch members still in StatusUploading to a terminal
// StatusError. Called after reconciliation so no candidate can stay stuck
// in uploading indefinitely on an ambiguous server response.
func (m *Manager) SweepStale(batchID string) int {
	return m.FailBatch(batchID, "upload not confirmed by server")
}

// SweepOlderThan forces every uploading candidate whose send time is older
// than d into StatusError, regardless of batch. A safety net for batches
// whose submit call never returned.
func (m *Manager) SweepOlderThan(d time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-d)
	failed := 0
	for _, c := range m.candidates {
		if c.Status == models.StatusUploading && c.SentAt.Before(cutoff) {
			c.Status = models.StatusError
			c.ErrorMessage = "upload not confirmed by server"
			failed++
		}
	}
	return failed
}

func (m *Manager) snapshotLocked() []*models.UploadCandidate {
	out := make([]*models.UploadCandidate, 0, len(m.candidates))
	for _, c := range m.candidates {
		out = append(out, copyOf(c))
	}
	return out
}

func copyOf(c *models.UploadCandidate) *models.UploadCandidate {
	cp := *c
	return &cp
}
