package actions

import (
	"context"

	"githelper.dev/githelper/internal/browser"
	"githelper.dev/githelper/internal/runtime"
)

// BrowseAction starts the file browser at dir, or at the repository folder when dir is empty
func BrowseAction(ctx context.Context, rc *runtime.Context, dir string) error {
	if dir == "" {
		dir = rc.Git.Dir()
	}
	return browser.New(dir, rc.Prompter, rc.Splog, rc.Opener).Run(ctx)
}
