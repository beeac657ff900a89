package git

import (
	"fmt"
	"regexp"
	"strings"

	gherrors "githelper.dev/githelper/internal/errors"
)

const namePattern = `[A-Za-z0-9_.-]+`

var (
	// git@github.com:owner/repo.git
	scpPattern = regexp.MustCompile(`^(?:(` + namePattern + `)@)?(` + namePattern + `):(` + namePattern + `)/(` + namePattern + `?)/?$`)
	// ssh://git@github.com[:22]/owner/repo.git and https://github.com/owner/repo.git
	urlPattern = regexp.MustCompile(`^(ssh|https?|git)://(?:(` + namePattern + `)@)?(` + namePattern + `)(?::\d+)?/(` + namePattern + `)/(` + namePattern + `?)/?$`)

	// locatorPattern finds a remote locator anywhere inside a line of command output
	locatorPattern = regexp.MustCompile(`(?:` + namePattern + `@)?` + namePattern + `:` + namePattern + `/` + namePattern + `|(?:ssh|https?)://\S+/` + namePattern + `/` + namePattern)
)

// Endpoint is a parsed remote locator
type Endpoint struct {
	Raw    string
	Scheme string // "scp", "ssh", "https", "http" or "git"
	User   string
	Host   string
	Owner  string
	Repo   string
}

// ParseEndpoint parses host:owner/repo, ssh:// and https:// remote URLs
func ParseEndpoint(raw string) (Endpoint, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Endpoint{}, gherrors.NewInvalidRemoteError(raw)
	}

	if m := urlPattern.FindStringSubmatch(s); m != nil {
		ep := Endpoint{Raw: s, Scheme: m[1], User: m[2], Host: m[3], Owner: m[4], Repo: trimGitSuffix(m[5])}
		if ep.Repo == "" {
			return Endpoint{}, gherrors.NewInvalidRemoteError(raw)
		}
		return ep, nil
	}
	if strings.Contains(s, "://") {
		return Endpoint{}, gherrors.NewInvalidRemoteError(raw)
	}
	if m := scpPattern.FindStringSubmatch(s); m != nil {
		ep := Endpoint{Raw: s, Scheme: "scp", User: m[1], Host: m[2], Owner: m[3], Repo: trimGitSuffix(m[4])}
		if ep.Repo == "" {
			return Endpoint{}, gherrors.NewInvalidRemoteError(raw)
		}
		return ep, nil
	}
	return Endpoint{}, gherrors.NewInvalidRemoteError(raw)
}

// ValidateRemote returns an error unless raw parses as a remote locator
func ValidateRemote(raw string) error {
	_, err := ParseEndpoint(raw)
	return err
}

// FullName returns "owner/repo"
func (e Endpoint) FullName() string {
	return fmt.Sprintf("%s/%s", e.Owner, e.Repo)
}

// SSH returns the scp-style SSH locator for the same repository
func (e Endpoint) SSH() string {
	user := e.User
	if user == "" || e.Scheme == "https" || e.Scheme == "http" {
		user = "git"
	}
	return fmt.Sprintf("%s@%s:%s/%s.git", user, e.Host, e.Owner, e.Repo)
}

// ContainsLocator reports whether a line of output mentions a remote locator
func ContainsLocator(line string) bool {
	return locatorPattern.MatchString(line)
}

func trimGitSuffix(name string) string {
	return strings.TrimSuffix(name, ".git")
}

// IsLocalPath reports remotes that point at a folder (a mirror on shared storage)
func IsLocalPath(raw string) bool {
	return strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "file://") || strings.HasPrefix(raw, ".")
}

// CheckTransport accepts a remote that is a valid locator or a local folder
func CheckTransport(raw string) error {
	if IsLocalPath(raw) {
		return nil
	}
	return ValidateRemote(raw)
}
