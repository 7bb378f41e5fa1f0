// Package services contains application services for the GrantPilot client.
// This file defines the upload service: admission of selected files, batch
// submission through the transport, and reconciliation of server results
// back onto the candidate list.
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/grantpilot/cli/internal/client/models"
	"github.com/grantpilot/cli/internal/client/session"
	"github.com/grantpilot/cli/internal/client/transport"
	"github.com/grantpilot/cli/internal/common"
	"github.com/grantpilot/cli/internal/filex"
	"github.com/grantpilot/cli/internal/logging"
)

// batchFailureMessage is the single generic message every member of a failed
// batch receives; the transport cannot attribute a hard failure per file.
const batchFailureMessage = "Upload failed. Please try again."

// SubmitResult summarizes one submitted batch.
type SubmitResult struct {
	BatchID   string
	Sent      int
	Confirmed int
	Swept     int
}

// UploadService defines the upload operations for the CLI.
//
// Contract:
//   - AddPaths: stat and admit local files into the session.
//   - Submit: send all pending candidates as one batch; at most one submit
//     may be in flight at a time (common.ErrUploadInFlight otherwise).
//   - List/Remove: inspect and edit the candidate list.
//   - SweepOverdue: force candidates stuck in uploading past the resolve
//     timeout to a terminal error state.
//
// All methods must honor context cancellation/timeouts.
type UploadService interface {
	AddPaths(ctx context.Context, paths []string) ([]*models.UploadCandidate, error)
	Submit(ctx context.Context) (*SubmitResult, error)
	List() []*models.UploadCandidate
	Remove(id string) []*models.UploadCandidate
	SweepOverdue() int
}

type uploadService struct {
	client         transport.Client
	session        *session.Manager
	log            logging.Logger
	resolveTimeout time.Duration

	// inFlight serializes Submit calls: a second submission while one is
	// outstanding is rejected instead of firing a parallel request.
	inFlight *semaphore.Weighted
}

func NewUploadService(client transport.Client, sess *session.Manager, log logging.Logger, resolveTimeout time.Duration) UploadService {
	return &uploadService{
		client:         client,
		session:        sess,
		log:            log,
		resolveTimeout: resolveTimeout,
		inFlight:       semaphore.NewWeighted(1),
	}
}

func (s *uploadService) AddPaths(ctx context.Context, paths []string) ([]*models.UploadCandidate, error) {
	files := make([]models.LocalFile, 0, len(paths))
	for _, p := range paths {
		name, size, err := filex.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("selecting %s: %w", p, err)
		}
		files = append(files, models.LocalFile{Path: p, Name: name, SizeBytes: size})
	}

	list, err := s.session.Add(files)
	if err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "files admitted", "selected", len(paths), "total", len(list))
	return list, nil
}

func (s *uploadService) Submit(ctx context.Context) (*SubmitResult, error) {
	if !s.inFlight.TryAcquire(1) {
		return nil, common.ErrUploadInFlight
	}
	defer s.inFlight.Release(1)

	batchID, batch, err := s.session.BeginBatch()
	if err != nil {
		return nil, err
	}

	log := s.log.With("batch_id", batchID)
	log.Info(ctx, "submitting batch", "files", len(batch))

	results, err := s.client.Upload(ctx, batch)
	if err != nil {
		failed := s.session.FailBatch(batchID, batchFailureMessage)
		log.Error(ctx, "batch upload failed", "error", err, "failed", failed)
		return nil, fmt.Errorf("uploading batch: %w", err)
	}

	matched, unmatched := s.session.Reconcile(batchID, results)
	for _, name := range unmatched {
		log.Warn(ctx, "server reported unknown file", "filename", name)
	}

	// anything the server did not echo back is unresolvable now
	swept := s.session.SweepStale(batchID)
	if swept > 0 {
		log.Warn(ctx, "unconfirmed candidates forced to error", "count", swept)
	}

	log.Info(ctx, "batch reconciled", "confirmed", matched, "swept", swept)

	return &SubmitResult{
		BatchID:   batchID,
		Sent:      len(batch),
		Confirmed: matched,
		Swept:     swept,
	}, nil
}

func (s *uploadService) List() []*models.UploadCandidate {
	return s.session.List()
}

func (s *uploadService) Remove(id string) []*models.UploadCandidate {
	return s.session.Remove(id)
}

// SweepOverdue is the safety net for batches whose submit call never
// returned (process interrupted mid-flight): candidates uploading for
// longer than the resolve timeout become terminal errors.
func (s *uploadService) SweepOverdue() int {
	return s.session.SweepOlderThan(s.resolveTimeout)
}
