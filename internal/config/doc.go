// Package config manages githelper's user configuration.
//
// It handles:
//   - The identity used for commits, SSH keys and the GitHub remote
//   - The fixed repository folder and its remote host
//   - The move-marker signatures used by the remote repair policy
//   - Viewer and log file settings
//
// Configuration lives in a TOML file (default ~/.config/githelper/config.toml)
// and is passed explicitly into every action through the runtime context.
package config
