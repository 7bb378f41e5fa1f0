package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/grantpilot/cli/internal/client/models"
	"github.com/grantpilot/cli/internal/common"
)

// Add stages the given local files for upload. Files the session rejects
// individually (too big, wrong type) still appear in the list with an error
// message so the user can see why; a batch that exceeds the file-count limit
// is rejected whole.
func (a *App) Add(ctx context.Context, paths []string) error {
	candidates, err := a.uploads.AddPaths(ctx, paths)
	if err != nil {
		if errors.Is(err, common.ErrTooManyFiles) {
			printlnFn(fmt.Sprintf("Too many files: at most %d may be staged", a.config.MaxFiles))
			return nil
		}
		a.log.Error(ctx, "staging files failed", "error", err)
		return err
	}

	printCandidates(candidates)
	return nil
}

// List prints the staged candidates and their statuses.
func (a *App) List(ctx context.Context) error {
	printCandidates(a.uploads.List())
	return nil
}

// Remove drops a staged candidate by id. Unknown ids are a no-op.
func (a *App) Remove(ctx context.Context, id string) error {
	printCandidates(a.uploads.Remove(id))
	return nil
}

// Upload submits every pending candidate as one batch. A submit already in
// flight is reported instead of firing a second request.
func (a *App) Upload(ctx context.Context) error {
	res, err := a.uploads.Submit(ctx)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNothingToUpload):
			printlnFn("Nothing to upload: stage files with 'add' first")
		case errors.Is(err, common.ErrUploadInFlight):
			printlnFn("An upload is already in progress")
		default:
			a.log.Error(ctx, "upload failed", "error", err)
			printlnFn("Upload failed. Please try again.")
		}
		return err
	}

	printlnFn(fmt.Sprintf("Uploaded %d/%d files (batch %s)", res.Confirmed, res.Sent, res.BatchID))
	if res.Swept > 0 {
		printlnFn(fmt.Sprintf("%d file(s) were not confirmed by the server", res.Swept))
	}
	printCandidates(a.uploads.List())
	return nil
}

func printCandidates(candidates []*models.UploadCandidate) {
	if len(candidates) == 0 {
		printlnFn("No files staged")
		return
	}
	for _, c := range candidates {
		line := fmt.Sprintf("%s  %-30s %8d bytes  %s", c.ID, c.Name, c.SizeBytes, c.Status)
		if c.ErrorMessage != "" {
			line += "  (" + c.ErrorMessage + ")"
		}
		if c.RemoteURL != "" {
			line += "  " + c.RemoteURL
		}
		printlnFn(line)
	}
}
