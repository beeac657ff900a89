package actions

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"githelper.dev/githelper/internal/output"
	"githelper.dev/githelper/internal/runtime"
)

// AddOneAction lists changed files and stages the one the user picks
func AddOneAction(ctx context.Context, rc *runtime.Context) error {
	if err := prepare(ctx, rc); err != nil {
		return err
	}
	files, err := rc.Git.ChangedFiles(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		rc.Splog.Info("Nothing to add, the working tree is clean.")
		return nil
	}

	var b strings.Builder
	for i, f := range files {
		fmt.Fprintf(&b, "%s %s\n", output.Key(fmt.Sprintf("%2d)", i+1)), f)
	}
	fmt.Fprintf(&b, "%s Cancel\n", output.Key(" 0)"))
	rc.Splog.Page(b.String())

	answer, err := rc.Prompter.Line("File to add: ")
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || idx < 0 || idx > len(files) {
		return fmt.Errorf("invalid choice %q", answer)
	}
	if idx == 0 {
		return nil
	}

	path := files[idx-1]
	if err := rc.Git.Add(ctx, path); err != nil {
		return err
	}
	rc.Splog.Success("Staged %s.", path)
	return nil
}
