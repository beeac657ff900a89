package actions

import (
	"context"
	"errors"
	"fmt"
	"os"

	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/menu"
	"githelper.dev/githelper/internal/runtime"
	"githelper.dev/githelper/internal/sshkey"
)

// SSHShowAction prints the key location, fingerprint and public key
func SSHShowAction(rc *runtime.Context) error {
	splog := rc.Splog
	st, err := rc.Keys.Status()
	if err != nil {
		return err
	}
	if !st.Exists {
		splog.Warn("No key at %s yet. Use \"Generate key\" first.", st.PublicPath)
		return nil
	}

	splog.Info("Key:         %s", st.Path)
	splog.Info("Type:        %s", st.Type)
	splog.Info("Fingerprint: %s", st.Fingerprint)
	if st.Comment != "" {
		splog.Info("Comment:     %s", st.Comment)
	}
	key, err := rc.Keys.PublicKey()
	if err != nil {
		return err
	}
	splog.Newline()
	splog.Page(key)
	return nil
}

// SSHGenerateAction creates the key pair, asking before replacing an existing one
func SSHGenerateAction(ctx context.Context, rc *runtime.Context) error {
	if rc.Config.Identity.Email == "" {
		return missingConfig(rc)
	}

	overwrite := false
	if rc.Keys.Exists() {
		ok, err := rc.Prompter.Confirm(fmt.Sprintf("%s already exists. Replace it? The old key stops working", rc.Keys.KeyPath), false)
		if err != nil {
			return err
		}
		if !ok {
			rc.Splog.Info("Kept the existing key.")
			return nil
		}
		overwrite = true
	}

	res, err := rc.Keys.Generate(ctx, overwrite)
	if err != nil {
		return err
	}
	rc.Splog.Debug("%s", res.Trimmed())
	rc.Splog.Success("Generated %s", rc.Keys.KeyPath)
	return SSHShowAction(rc)
}

// SSHCopyAction copies the public key to the clipboard
func SSHCopyAction(rc *runtime.Context) error {
	err := rc.Keys.Copy()
	switch {
	case err == nil:
		rc.Splog.Success("Public key copied to the clipboard.")
		return nil
	case errors.Is(err, gherrors.ErrNoKey):
		return err
	}

	// no clipboard tool (termux-api missing): show the key so it can be copied by hand
	rc.Splog.Warn("%v", err)
	rc.Splog.Tip("Install termux-api for clipboard support. Copy the key below by hand:")
	key, keyErr := rc.Keys.PublicKey()
	if keyErr != nil {
		return keyErr
	}
	rc.Splog.Page(key)
	return nil
}

// SSHOpenGitHubAction opens GitHub's "new SSH key" page
func SSHOpenGitHubAction(ctx context.Context, rc *runtime.Context) error {
	if err := rc.Opener.OpenURL(ctx, sshkey.SettingsURL); err != nil {
		rc.Splog.Tip("Open %s in a browser.", sshkey.SettingsURL)
		return err
	}
	rc.Splog.Info("Opened %s", sshkey.SettingsURL)
	return nil
}

// SSHUploadAction adds the public key to the GitHub account through the API
func SSHUploadAction(ctx context.Context, rc *runtime.Context) error {
	key, err := rc.Keys.PublicKey()
	if err != nil {
		return err
	}
	client, err := rc.GitHub(ctx)
	if err != nil {
		return err
	}

	def := "githelper"
	if host, err := os.Hostname(); err == nil && host != "" {
		def = "githelper " + host
	}
	title, err := rc.Prompter.Input("Key title", def)
	if err != nil {
		return err
	}

	uploaded, err := client.UploadKey(ctx, title, key)
	if err != nil {
		return err
	}
	rc.Splog.Success("Uploaded key %q (id %d).", uploaded.Title, uploaded.ID)
	return nil
}

// SSHTestAction checks that GitHub accepts the key
func SSHTestAction(ctx context.Context, rc *runtime.Context) error {
	res, err := rc.Keys.Test(ctx)
	if res.Output != "" && !res.Shown {
		rc.Splog.Page(res.Output)
	}
	if err != nil {
		return err
	}
	if !res.Authenticated {
		return fmt.Errorf("GitHub did not accept the key for git@%s", rc.Config.Repo.Host)
	}
	rc.Splog.Success("SSH authentication works.")
	return nil
}

// SSHMenu builds the key management submenu
func SSHMenu(rc *runtime.Context) (*menu.Dispatcher, error) {
	d := menu.New("🔑 SSH key management", rc.Prompter, rc.Splog)
	d.ExitLabel = "Back"
	d.Header = func() string {
		return rc.Keys.KeyPath
	}
	err := d.Register(
		menu.Action{Key: 1, Name: "ssh-show", Label: "Show key", Run: func(context.Context) error {
			return SSHShowAction(rc)
		}},
		menu.Action{Key: 2, Name: "ssh-generate", Label: "Generate key", Run: func(ctx context.Context) error {
			return SSHGenerateAction(ctx, rc)
		}},
		menu.Action{Key: 3, Name: "ssh-copy", Label: "Copy public key", Run: func(context.Context) error {
			return SSHCopyAction(rc)
		}},
		menu.Action{Key: 4, Name: "ssh-open", Label: "Open GitHub SSH settings", Run: func(ctx context.Context) error {
			return SSHOpenGitHubAction(ctx, rc)
		}},
		menu.Action{Key: 5, Name: "ssh-upload", Label: "Upload key with the GitHub API", Run: func(ctx context.Context) error {
			return SSHUploadAction(ctx, rc)
		}},
		menu.Action{Key: 6, Name: "ssh-test", Label: "Test connection", Run: func(ctx context.Context) error {
			return SSHTestAction(ctx, rc)
		}},
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// SSHMenuAction runs the key management submenu until the user goes back
func SSHMenuAction(ctx context.Context, rc *runtime.Context) error {
	d, err := SSHMenu(rc)
	if err != nil {
		return err
	}
	return d.Run(ctx)
}
