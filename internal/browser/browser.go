package browser

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"githelper.dev/githelper/internal/output"
	"githelper.dev/githelper/internal/prompt"
)

// Viewer opens a file outside the program
type Viewer interface {
	Open(ctx context.Context, path string) error
}

// Browser walks directories starting at Root
type Browser struct {
	Root     string
	prompter prompt.Prompter
	splog    *output.Splog
	viewer   Viewer
}

// New creates a Browser
func New(root string, p prompt.Prompter, splog *output.Splog, v Viewer) *Browser {
	return &Browser{Root: root, prompter: p, splog: splog, viewer: v}
}

// Run shows listings until the user picks 0 or input ends
func (b *Browser) Run(ctx context.Context) error {
	cwd, err := filepath.Abs(b.Root)
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		listing, err := List(cwd)
		if err != nil {
			return err
		}
		listing.Render(b.splog.Writer())

		answer, err := b.prompter.Line("Choose a number: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		entry, ok := listing.Lookup(answer)
		if !ok {
			b.splog.Error("Invalid choice %q.", answer)
			continue
		}

		switch entry.Kind {
		case KindBack:
			return nil
		case KindParent, KindDir:
			cwd = entry.Path
		case KindFile:
			if err := b.viewer.Open(ctx, entry.Path); err != nil {
				b.splog.Error("%v", err)
			}
			if _, err := b.prompter.Line("Press Enter to continue..."); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}
}
