package repair

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"githelper.dev/githelper/internal/config"
	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/git"
	"githelper.dev/githelper/internal/runner"
)

// Remote reads and rewrites a named git remote
type Remote interface {
	RemoteURL(name string) (string, error)
	SetRemoteURL(name, url string) error
}

// Resolver looks up the current location of a repository that moved
type Resolver interface {
	Resolve(ctx context.Context, current git.Endpoint) (string, error)
}

// Logger receives progress messages
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Operation is a fetch, pull or push whose output may carry a move notice
type Operation func(ctx context.Context) (runner.Result, error)

// Where a replacement URL came from
const (
	SourceOutput   = "output"
	SourceResolver = "resolver"
	SourceFallback = "fallback"
)

// Outcome describes what a repair did. Callers treat a moved-and-fixed remote and an
// untouched one alike; the outcome exists for logging and config updates.
type Outcome struct {
	Moved     bool
	Signature string
	OldURL    string
	NewURL    string
	Source    string
	Endpoint  git.Endpoint
}

// Policy repairs the remote after GitHub reports a move
type Policy struct {
	Signatures []config.Signature
	RemoteName string
	Remote     Remote
	// Resolver is consulted when the output has no locator; nil disables it
	Resolver Resolver
	// Fallback renders the last-resort URL when called; nil disables it
	Fallback func() string
	// OnRepaired runs after the remote URL was rewritten
	OnRepaired func(Outcome)
	Log        Logger
}

// New builds a policy from configuration. The fallback template is only armed when
// repair.allow_fallback is set.
func New(cfg *config.Config, remote Remote, resolver Resolver, log Logger) *Policy {
	p := &Policy{
		Signatures: cfg.Repair.Signatures,
		RemoteName: cfg.Repo.Remote,
		Remote:     remote,
		Resolver:   resolver,
		Log:        log,
	}
	if cfg.Repair.AllowFallback {
		p.Fallback = cfg.FallbackURL
	}
	return p
}

// Detect returns the first signature whose marker appears in output
func (p *Policy) Detect(output string) (config.Signature, bool) {
	for _, sig := range p.Signatures {
		if sig.Marker != "" && strings.Contains(output, sig.Marker) {
			return sig, true
		}
	}
	return config.Signature{}, false
}

// ExtractLocator returns the last whitespace-delimited field of the first output line
// that contains a remote locator, if that field parses as one.
func ExtractLocator(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !git.ContainsLocator(line) {
			continue
		}
		fields := strings.Fields(line)
		candidate := fields[len(fields)-1]
		if err := git.ValidateRemote(candidate); err != nil {
			return "", false
		}
		return candidate, true
	}
	return "", false
}

// Repair inspects output and, when it carries a move notice, points the remote at the
// new location. Output without a notice is a no-op.
func (p *Policy) Repair(ctx context.Context, output string) (Outcome, error) {
	sig, ok := p.Detect(output)
	if !ok {
		return Outcome{}, nil
	}
	p.Log.Debug("move notice %q found in output", sig.Name)

	outcome := Outcome{Moved: true, Signature: sig.Name}
	if old, err := p.Remote.RemoteURL(p.RemoteName); err == nil {
		outcome.OldURL = old
	}

	newURL, source, err := p.locate(ctx, output, outcome.OldURL)
	if err != nil {
		return outcome, err
	}
	ep, err := git.ParseEndpoint(newURL)
	if err != nil {
		return outcome, fmt.Errorf("replacement from %s: %w", source, err)
	}
	outcome.NewURL = newURL
	outcome.Source = source
	outcome.Endpoint = ep

	if newURL == outcome.OldURL {
		p.Log.Debug("remote %s already points at %s", p.RemoteName, newURL)
		return outcome, nil
	}

	if err := p.Remote.SetRemoteURL(p.RemoteName, newURL); err != nil {
		return outcome, fmt.Errorf("failed to update remote %s: %w", p.RemoteName, err)
	}
	p.Log.Info("🔧 Repository moved, %s now points at %s", p.RemoteName, newURL)

	if p.OnRepaired != nil {
		p.OnRepaired(outcome)
	}
	return outcome, nil
}

func (p *Policy) locate(ctx context.Context, output, oldURL string) (string, string, error) {
	if url, ok := ExtractLocator(output); ok {
		return url, SourceOutput, nil
	}

	if p.Resolver != nil {
		current, err := git.ParseEndpoint(oldURL)
		if err == nil {
			url, err := p.Resolver.Resolve(ctx, current)
			if err == nil && url != "" {
				return url, SourceResolver, nil
			}
			if err != nil {
				p.Log.Debug("resolver could not locate %s: %v", current.FullName(), err)
			}
		}
	}

	if p.Fallback != nil {
		if url := p.Fallback(); url != "" {
			p.Log.Warn("No new location in the output, using the configured fallback %s. Check it is right!", url)
			return url, SourceFallback, nil
		}
	}

	return "", "", gherrors.ErrNoReplacementURL
}

// Preflight fetches from the remote and repairs it before a mutating operation.
// A repository without the remote is left alone; a remote that is not a valid
// locator is reported so nothing is pushed to or pulled from it.
func (p *Policy) Preflight(ctx context.Context, fetch Operation) (Outcome, error) {
	url, err := p.Remote.RemoteURL(p.RemoteName)
	if err != nil {
		if errors.Is(err, gherrors.ErrNoRemote) {
			p.Log.Debug("no %s remote, skipping remote check", p.RemoteName)
			return Outcome{}, nil
		}
		return Outcome{}, err
	}
	if err := git.CheckTransport(url); err != nil {
		return Outcome{}, err
	}

	res, err := fetch(ctx)
	if err != nil {
		return Outcome{}, err
	}
	outcome, err := p.Repair(ctx, res.Output)
	if err != nil {
		return outcome, err
	}
	if !outcome.Moved && !res.Success() {
		p.Log.Debug("fetch failed before the operation:\n%s", res.Trimmed())
	}
	return outcome, nil
}

// Do runs op and repairs the remote if its output reports a move. When op failed
// and the remote was rewritten, op is retried exactly once; the retry's result is
// returned as-is and never triggers another repair.
func (p *Policy) Do(ctx context.Context, op Operation) (runner.Result, Outcome, error) {
	res, err := op(ctx)
	if err != nil {
		return res, Outcome{}, err
	}

	outcome, err := p.Repair(ctx, res.Output)
	if err != nil {
		return res, outcome, err
	}
	if !outcome.Moved || res.Success() || outcome.NewURL == outcome.OldURL {
		return res, outcome, nil
	}

	p.Log.Info("Retrying against %s", outcome.NewURL)
	retry, err := op(ctx)
	return retry, outcome, err
}
