package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultMoveMarker is the phrase GitHub prints when a repository was renamed or transferred
const DefaultMoveMarker = "This repository moved."

// DefaultFolderRoot is where repositories live when repo.folder is not set.
// ~/storage/shared is the Termux link to the phone's shared storage.
const DefaultFolderRoot = "~/storage/shared/GitHub"

// Identity holds the user details used for commits, keys and remotes
type Identity struct {
	Name       string `toml:"name"`
	Email      string `toml:"email"`
	GitHubUser string `toml:"github_user"`
}

// RepoConfig describes the fixed working repository
type RepoConfig struct {
	Name     string `toml:"name"`
	Folder   string `toml:"folder"`
	Host     string `toml:"host"`
	Branch   string `toml:"branch"`
	Remote   string `toml:"remote"`
	LogLimit int    `toml:"log_limit"`
}

// SSHConfig describes the SSH key githelper manages
type SSHConfig struct {
	KeyPath string `toml:"key_path"`
	KeyType string `toml:"key_type"`
}

// ViewerConfig selects the Android activity used to open files.
// Component is passed to `am start -n` when set (for example "com.termux/.app.TermuxOpenReceiver").
type ViewerConfig struct {
	Component string `toml:"component"`
}

// Signature is one recognized "repository moved" message
type Signature struct {
	Name   string `toml:"name"`
	Marker string `toml:"marker"`
}

// RepairConfig controls the remote repair policy
type RepairConfig struct {
	Signatures []Signature `toml:"signatures"`
	// AllowFallback enables FallbackRemote when no new location can be extracted.
	// Off by default: a guessed remote can silently point at the wrong repository.
	AllowFallback  bool   `toml:"allow_fallback"`
	FallbackRemote string `toml:"fallback_remote"`
}

// LogConfig controls file logging
type LogConfig struct {
	File string `toml:"file"`
}

// Config holds the githelper configuration
type Config struct {
	Identity Identity     `toml:"identity"`
	Repo     RepoConfig   `toml:"repo"`
	SSH      SSHConfig    `toml:"ssh"`
	Viewer   ViewerConfig `toml:"viewer"`
	Repair   RepairConfig `toml:"repair"`
	Log      LogConfig    `toml:"log"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Repo: RepoConfig{
			Host:     "github.com",
			Branch:   "main",
			Remote:   "origin",
			LogLimit: 15,
		},
		SSH: SSHConfig{
			KeyPath: "~/.ssh/id_ed25519",
			KeyType: "ed25519",
		},
		Repair: RepairConfig{
			Signatures: []Signature{
				{Name: "github-moved", Marker: DefaultMoveMarker},
			},
			FallbackRemote: "git@{host}:{user}/{repo}.git",
		},
	}
}

// Path returns the config file location: GITHELPER_CONFIG, or ~/.config/githelper/config.toml
func Path() (string, error) {
	if p := os.Getenv("GITHELPER_CONFIG"); p != "" {
		return ExpandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "githelper", "config.toml"), nil
}

// Load reads the config file at path.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.fillDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0600)
}

// Update applies fn to the file's own values and writes them back.
// Environment overrides are not applied, so they never end up on disk.
func Update(path string, fn func(*Config)) error {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.fillDefaults()
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fn(&cfg)
	return Save(path, cfg)
}

// Encode writes cfg as TOML
func Encode(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// fillDefaults restores defaults for keys left empty in the file
func (c *Config) fillDefaults() {
	def := Default()
	if c.Repo.Host == "" {
		c.Repo.Host = def.Repo.Host
	}
	if c.Repo.Branch == "" {
		c.Repo.Branch = def.Repo.Branch
	}
	if c.Repo.Remote == "" {
		c.Repo.Remote = def.Repo.Remote
	}
	if c.Repo.LogLimit <= 0 {
		c.Repo.LogLimit = def.Repo.LogLimit
	}
	if c.SSH.KeyPath == "" {
		c.SSH.KeyPath = def.SSH.KeyPath
	}
	if c.SSH.KeyType == "" {
		c.SSH.KeyType = def.SSH.KeyType
	}
	if len(c.Repair.Signatures) == 0 {
		c.Repair.Signatures = def.Repair.Signatures
	}
	if c.Repair.FallbackRemote == "" {
		c.Repair.FallbackRemote = def.Repair.FallbackRemote
	}
}

// applyEnv lets GITHELPER_* variables override identity and repository name
func (c *Config) applyEnv() {
	if v := os.Getenv("GITHELPER_NAME"); v != "" {
		c.Identity.Name = v
	}
	if v := os.Getenv("GITHELPER_EMAIL"); v != "" {
		c.Identity.Email = v
	}
	if v := os.Getenv("GITHELPER_GITHUB_USER"); v != "" {
		c.Identity.GitHubUser = v
	}
	if v := os.Getenv("GITHELPER_REPO"); v != "" {
		c.Repo.Name = v
	}
}

// Validate checks the values that would break commands if wrong
func (c *Config) Validate() error {
	switch c.SSH.KeyType {
	case "ed25519", "rsa", "ecdsa":
	default:
		return fmt.Errorf("invalid ssh.key_type %q: must be \"ed25519\", \"rsa\" or \"ecdsa\"", c.SSH.KeyType)
	}
	if c.Identity.Email != "" && !strings.Contains(c.Identity.Email, "@") {
		return fmt.Errorf("invalid identity.email %q", c.Identity.Email)
	}
	if strings.ContainsAny(c.Repo.Name, " /:") {
		return fmt.Errorf("invalid repo.name %q: must not contain spaces, '/' or ':'", c.Repo.Name)
	}
	for i, sig := range c.Repair.Signatures {
		if strings.TrimSpace(sig.Marker) == "" {
			return fmt.Errorf("repair.signatures[%d] has an empty marker", i)
		}
	}
	return nil
}

// Missing lists the identity fields that still need a value before setup can run
func (c *Config) Missing() []string {
	var missing []string
	if c.Identity.Name == "" {
		missing = append(missing, "identity.name")
	}
	if c.Identity.Email == "" {
		missing = append(missing, "identity.email")
	}
	if c.Identity.GitHubUser == "" {
		missing = append(missing, "identity.github_user")
	}
	if c.Repo.Name == "" {
		missing = append(missing, "repo.name")
	}
	return missing
}

// RepoDir returns the expanded repository folder
func (c *Config) RepoDir() (string, error) {
	if c.Repo.Folder != "" {
		return ExpandPath(c.Repo.Folder)
	}
	root, err := ExpandPath(DefaultFolderRoot)
	if err != nil {
		return "", err
	}
	if c.Repo.Name == "" {
		return root, nil
	}
	return filepath.Join(root, c.Repo.Name), nil
}

// KeyPath returns the expanded private key path
func (c *Config) KeyPath() (string, error) {
	return ExpandPath(c.SSH.KeyPath)
}

// RemoteURL returns the SSH locator for the configured repository
func (c *Config) RemoteURL() string {
	return fmt.Sprintf("git@%s:%s/%s.git", c.Repo.Host, c.Identity.GitHubUser, c.Repo.Name)
}

// FallbackURL renders repair.fallback_remote with {host}, {user} and {repo}
func (c *Config) FallbackURL() string {
	r := strings.NewReplacer(
		"{host}", c.Repo.Host,
		"{user}", c.Identity.GitHubUser,
		"{repo}", c.Repo.Name,
	)
	return r.Replace(c.Repair.FallbackRemote)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}
