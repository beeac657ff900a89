package browser

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"githelper.dev/githelper/internal/runner"
)

const viewIntent = "android.intent.action.VIEW"

// Opener hands files and URLs to an external viewer. It tries the Android intent
// launcher first, then the Termux helpers, then the desktop opener; the first
// command that exits 0 wins.
type Opener struct {
	runner runner.Runner
	// Component pins the intent to package/activity when set
	Component string
	log       runner.Logger
	desktop   []string
}

// NewOpener creates an Opener
func NewOpener(r runner.Runner, component string, log runner.Logger) *Opener {
	return &Opener{runner: r, Component: component, log: log, desktop: desktopOpener}
}

// Open opens a local file
func (o *Opener) Open(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	am := []string{"am", "start", "--user", "0", "-a", viewIntent, "-d", "file://" + abs, "-t", MimeType(abs)}
	if o.Component != "" {
		am = append(am, "-n", o.Component)
	}
	return o.try(ctx, abs,
		am,
		[]string{"termux-open", abs},
		append(append([]string{}, o.desktop...), abs),
	)
}

// OpenURL opens a web page
func (o *Opener) OpenURL(ctx context.Context, url string) error {
	return o.try(ctx, url,
		[]string{"am", "start", "--user", "0", "-a", viewIntent, "-d", url},
		[]string{"termux-open-url", url},
		append(append([]string{}, o.desktop...), url),
	)
}

func (o *Opener) try(ctx context.Context, target string, attempts ...[]string) error {
	tried := make([]string, 0, len(attempts))
	for _, argv := range attempts {
		res, err := o.runner.Run(ctx, "", argv[0], argv[1:]...)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			o.debug("%s unavailable: %v", argv[0], err)
		case res.Success():
			o.debug("opened %s with %s", target, argv[0])
			return nil
		default:
			o.debug("%s exited %d: %s", argv[0], res.ExitCode, res.Trimmed())
		}
		tried = append(tried, argv[0])
	}
	return fmt.Errorf("could not open %s (tried %s)", target, strings.Join(tried, ", "))
}

func (o *Opener) debug(format string, args ...interface{}) {
	if o.log != nil {
		o.log.Debug(format, args...)
	}
}

// MimeType guesses the MIME type from the file extension, */* when unknown
func MimeType(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t == "" {
		return "*/*"
	}
	if base, _, ok := strings.Cut(t, ";"); ok {
		t = base
	}
	return strings.TrimSpace(t)
}
