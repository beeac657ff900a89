package browser

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"githelper.dev/githelper/internal/runner"
)

func TestOpenerOpen(t *testing.T) {
	t.Run("android intent launcher wins first", func(t *testing.T) {
		fake := runner.NewFake()
		o := NewOpener(fake, "", nil)

		require.NoError(t, o.Open(context.Background(), "/sdcard/notes.pdf"))
		require.Len(t, fake.Calls, 1)
		require.Equal(t,
			"am start --user 0 -a android.intent.action.VIEW -d file:///sdcard/notes.pdf -t application/pdf",
			fake.Calls[0].String())
	})

	t.Run("component pins the activity", func(t *testing.T) {
		fake := runner.NewFake()
		o := NewOpener(fake, "com.termux/.app.TermuxOpenReceiver", nil)

		require.NoError(t, o.Open(context.Background(), "/tmp/a.unknownext"))
		require.Equal(t, []string{
			"start", "--user", "0", "-a", viewIntent, "-d", "file:///tmp/a.unknownext", "-t", "*/*",
			"-n", "com.termux/.app.TermuxOpenReceiver",
		}, fake.Calls[0].Args)
	})

	t.Run("falls back through termux-open to the desktop opener", func(t *testing.T) {
		fake := runner.NewFake().
			Fail("am ", errors.New("executable file not found")).
			On("termux-open ", runner.Result{ExitCode: 1, Output: "no handler"})
		o := NewOpener(fake, "", nil)

		path := filepath.Join(t.TempDir(), "a.txt")
		require.NoError(t, o.Open(context.Background(), path))
		require.Len(t, fake.Calls, 3)
		require.Equal(t, "termux-open", fake.Calls[1].Name)
		require.Equal(t, desktopOpener[0], fake.Calls[2].Name)
		require.Equal(t, path, fake.Calls[2].Args[len(fake.Calls[2].Args)-1])
	})

	t.Run("all strategies failing lists the attempts", func(t *testing.T) {
		fake := runner.NewFake().
			On("am ", runner.Result{ExitCode: 1}).
			On("termux-open ", runner.Result{ExitCode: 1}).
			On(desktopOpener[0], runner.Result{ExitCode: 3})
		o := NewOpener(fake, "", nil)

		err := o.Open(context.Background(), "/tmp/a.txt")
		require.Error(t, err)
		require.Contains(t, err.Error(), "tried am, termux-open, "+desktopOpener[0])
	})
}

func TestOpenerOpenURL(t *testing.T) {
	fake := runner.NewFake().On("am ", runner.Result{ExitCode: 1})
	o := NewOpener(fake, "", nil)

	require.NoError(t, o.OpenURL(context.Background(), "https://github.com/settings/ssh/new"))
	require.Len(t, fake.Calls, 2)
	require.Equal(t, "termux-open-url https://github.com/settings/ssh/new", fake.Calls[1].String())
}

func TestMimeType(t *testing.T) {
	require.Equal(t, "text/html", MimeType("index.HTML"))
	require.Equal(t, "image/png", MimeType("shot.png"))
	require.Equal(t, "*/*", MimeType("Makefile"))
}
