// Package sshkey manages the SSH key pair githelper uses to talk to GitHub.
package sshkey

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/crypto/ssh"

	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/runner"
)

// SettingsURL is GitHub's page for adding a new SSH key
const SettingsURL = "https://github.com/settings/ssh/new"

// authenticatedMarker is what GitHub prints on a successful ssh -T. ssh still exits 1
// because GitHub does not provide shell access.
const authenticatedMarker = "successfully authenticated"

// Status describes the key pair on disk
type Status struct {
	Path        string
	PublicPath  string
	Exists      bool
	Type        string
	Fingerprint string
	Comment     string
}

// Manager handles one key pair
type Manager struct {
	runner  runner.Runner
	KeyPath string
	KeyType string
	Email   string
	Host    string
	// WriteClipboard replaces the system clipboard in tests
	WriteClipboard func(text string) error
}

// New creates a Manager for the private key at keyPath
func New(r runner.Runner, keyPath, keyType, email, host string) *Manager {
	return &Manager{
		runner:         r,
		KeyPath:        keyPath,
		KeyType:        keyType,
		Email:          email,
		Host:           host,
		WriteClipboard: clipboard.WriteAll,
	}
}

// PublicPath returns the path of the public half
func (m *Manager) PublicPath() string {
	return m.KeyPath + ".pub"
}

// Exists reports whether the private key file is present
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.KeyPath)
	return err == nil
}

// PublicKey returns the public key line
func (m *Manager) PublicKey() (string, error) {
	data, err := os.ReadFile(m.PublicPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", m.PublicPath(), gherrors.ErrNoKey)
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Status reads the public key and computes its SHA256 fingerprint
func (m *Manager) Status() (Status, error) {
	st := Status{Path: m.KeyPath, PublicPath: m.PublicPath()}

	line, err := m.PublicKey()
	if errors.Is(err, gherrors.ErrNoKey) {
		return st, nil
	}
	if err != nil {
		return st, err
	}

	pub, comment, _, _, err := ssh.ParseAuthorizedKey([]byte(line))
	if err != nil {
		return st, fmt.Errorf("failed to parse %s: %w", m.PublicPath(), err)
	}
	st.Exists = true
	st.Type = pub.Type()
	st.Fingerprint = ssh.FingerprintSHA256(pub)
	st.Comment = comment
	return st, nil
}

// Generate creates a new key pair with ssh-keygen and an empty passphrase.
// An existing key is only replaced when overwrite is set.
func (m *Manager) Generate(ctx context.Context, overwrite bool) (runner.Result, error) {
	if m.Exists() {
		if !overwrite {
			return runner.Result{}, fmt.Errorf("%s already exists", m.KeyPath)
		}
		// ssh-keygen would stop and ask before overwriting
		for _, p := range []string{m.KeyPath, m.PublicPath()} {
			if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return runner.Result{}, err
			}
		}
	}
	if err := os.MkdirAll(filepath.Dir(m.KeyPath), 0o700); err != nil {
		return runner.Result{}, fmt.Errorf("failed to create %s: %w", filepath.Dir(m.KeyPath), err)
	}

	args := []string{"-t", m.KeyType, "-C", m.Email, "-f", m.KeyPath, "-N", ""}
	res, err := m.runner.Run(ctx, "", "ssh-keygen", args...)
	if err != nil {
		return res, err
	}
	if !res.Success() {
		return res, gherrors.NewCommandError("ssh-keygen", args, res.Output, res.ExitCode, nil)
	}
	return res, nil
}

// Copy puts the public key on the clipboard
func (m *Manager) Copy() error {
	key, err := m.PublicKey()
	if err != nil {
		return err
	}
	if err := m.WriteClipboard(key); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// TestResult is the outcome of an ssh -T probe
type TestResult struct {
	Authenticated bool
	Output        string
	// Shown is set when ssh ran attached to the terminal and its output was already printed
	Shown bool
}

// Test runs ssh -T against the git host. Authentication is judged from the output,
// not the exit status.
func (m *Manager) Test(ctx context.Context) (TestResult, error) {
	res, attached, err := runner.RunAttached(ctx, m.runner, "", "ssh",
		"-T",
		"-o", "StrictHostKeyChecking=accept-new",
		"-i", m.KeyPath,
		"git@"+m.Host,
	)
	if err != nil {
		return TestResult{Output: res.Output, Shown: attached}, err
	}
	return TestResult{
		Authenticated: strings.Contains(res.Output, authenticatedMarker),
		Output:        res.Trimmed(),
		Shown:         attached,
	}, nil
}
