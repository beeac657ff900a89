package actions

import (
	"context"
	"fmt"

	"githelper.dev/githelper/internal/menu"
	"githelper.dev/githelper/internal/runtime"
)

// MainMenu builds the top-level menu
func MainMenu(rc *runtime.Context) (*menu.Dispatcher, error) {
	d := menu.New("🐙 githelper", rc.Prompter, rc.Splog)
	d.Header = func() string {
		return header(rc)
	}

	err := d.Register(
		menu.Action{Key: 1, Name: "status", Label: "Status", Run: func(ctx context.Context) error {
			return StatusAction(ctx, rc)
		}},
		menu.Action{Key: 2, Name: "push", Label: "Add, commit and push", Run: func(ctx context.Context) error {
			return PushAction(ctx, rc, PushOptions{Prompt: true})
		}},
		menu.Action{Key: 3, Name: "quick-push", Label: "Quick push (automatic message)", Run: func(ctx context.Context) error {
			return QuickPushAction(ctx, rc)
		}},
		menu.Action{Key: 4, Name: "pull", Label: "Pull", Run: func(ctx context.Context) error {
			return PullAction(ctx, rc)
		}},
		menu.Action{Key: 5, Name: "log", Label: "Show log", Run: func(ctx context.Context) error {
			return LogAction(ctx, rc, 0)
		}},
		menu.Action{Key: 6, Name: "add-one", Label: "Add one file", Run: func(ctx context.Context) error {
			return AddOneAction(ctx, rc)
		}},
		menu.Action{Key: 7, Name: "undo", Label: "Undo last commit", Run: func(ctx context.Context) error {
			return UndoAction(ctx, rc, UndoOptions{})
		}},
		menu.Action{Key: 8, Name: "branch", Label: "Branch info", Run: func(ctx context.Context) error {
			return BranchInfoAction(ctx, rc)
		}},
		menu.Action{Key: 9, Name: "files", Label: "List tracked files", Run: func(ctx context.Context) error {
			return ListFilesAction(ctx, rc)
		}},
		menu.Action{Key: 10, Name: "browse", Label: "Browse files", Run: func(ctx context.Context) error {
			return BrowseAction(ctx, rc, "")
		}},
		menu.Action{Key: 11, Name: "ssh", Label: "SSH key management", Run: func(ctx context.Context) error {
			return SSHMenuAction(ctx, rc)
		}},
		menu.Action{Key: 12, Name: "init", Label: "Init repository", Run: func(ctx context.Context) error {
			return InitRepoAction(ctx, rc)
		}},
		menu.Action{Key: 13, Name: "device-script", Label: "Generate device setup script", Run: func(context.Context) error {
			return DeviceScriptAction(rc, "")
		}},
		menu.Action{Key: 14, Name: "fix-remote", Label: "Fix remote URL manually", Run: func(ctx context.Context) error {
			return FixRemoteAction(ctx, rc, "")
		}},
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// header is recomputed on every redraw so a repaired repository name shows up at once
func header(rc *runtime.Context) string {
	cfg := rc.Config
	name := cfg.Repo.Name
	if cfg.Identity.GitHubUser != "" && name != "" {
		name = cfg.Identity.GitHubUser + "/" + name
	}
	if name == "" {
		name = "(no repository configured)"
	}
	state := "not initialized"
	if rc.Git.IsRepository() {
		state = currentBranch(rc)
	}
	return fmt.Sprintf("%s  [%s]  %s", name, state, rc.Git.Dir())
}

// MenuAction runs the main menu until the user exits
func MenuAction(ctx context.Context, rc *runtime.Context) error {
	d, err := MainMenu(rc)
	if err != nil {
		return err
	}
	return d.Run(ctx)
}
