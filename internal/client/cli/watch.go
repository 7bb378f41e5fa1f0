package cli

import (
	"context"
	"fmt"

	"github.com/grantpilot/cli/internal/client/models"
	"github.com/grantpilot/cli/internal/common"
)

// Watch follows the stage-4 generation progress stream for an application
// until it completes or fails. The full application stage must be unlocked
// first.
func (a *App) Watch(ctx context.Context, applicationID string) error {
	ok, err := a.entitlements.IsUnlocked(ctx, common.StageApplication)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("The full application stage is locked: run 'unlock stage4' first")
		return nil
	}

	final, err := a.watcher.Watch(ctx, applicationID, func(u models.ProgressUpdate) {
		line := fmt.Sprintf("[%3d%%] %s: %s", u.Progress, u.Phase, u.Step)
		if u.Eta > 0 {
			line += fmt.Sprintf(" (eta %ds)", u.Eta)
		}
		printlnFn(line)
	})
	if err != nil {
		a.log.Error(ctx, "progress stream failed", "application", applicationID, "error", err)
		printlnFn("Lost the progress stream. Check the dashboard for the final result.")
		return err
	}

	switch final.Status {
	case models.ProgressError:
		printlnFn("Generation failed:", final.Error)
	default:
		printlnFn("Generation complete")
	}
	return nil
}
