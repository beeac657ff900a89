package menu

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"githelper.dev/githelper/internal/output"
	"githelper.dev/githelper/internal/prompt"
)

type harness struct {
	d           *Dispatcher
	out         *bytes.Buffer
	calls       map[string]int
	transitions []string
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	h := &harness{out: &bytes.Buffer{}, calls: map[string]int{}}
	splog, err := output.NewSplogWithConfig(h.out, "", false)
	require.NoError(t, err)

	h.d = New("githelper", prompt.NewLinePrompter(strings.NewReader(input), h.out), splog)
	h.d.OnTransition = func(from, to State) {
		h.transitions = append(h.transitions, from.String()+">"+to.String())
	}
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			h.calls[name]++
			return nil
		}
	}
	require.NoError(t, h.d.Register(
		Action{Key: 1, Name: "status", Label: "Status", Run: record("status")},
		Action{Key: 2, Name: "pull", Label: "Pull", Run: record("pull")},
		Action{Key: 3, Name: "fail", Label: "Fail", Run: func(context.Context) error {
			h.calls["fail"]++
			return errors.New("push rejected")
		}},
	))
	return h
}

func TestDispatcher(t *testing.T) {
	t.Run("runs the chosen action and waits for enter", func(t *testing.T) {
		h := newHarness(t, "1\n\n0\n")
		require.NoError(t, h.d.Run(context.Background()))

		require.Equal(t, 1, h.calls["status"])
		require.Equal(t, Exited, h.d.State())
		require.Equal(t, []string{
			"ShowingMenu>RunningAction",
			"RunningAction>AwaitingContinue",
			"AwaitingContinue>ShowingMenu",
			"ShowingMenu>Exited",
		}, h.transitions)
	})

	t.Run("invalid input leaves state unchanged and redisplays", func(t *testing.T) {
		h := newHarness(t, "42\nabc\n-1\n\n 7 \n0\n")
		require.NoError(t, h.d.Run(context.Background()))

		require.Empty(t, h.calls)
		require.Equal(t, []string{"ShowingMenu>Exited"}, h.transitions)
		require.Equal(t, 5, strings.Count(h.out.String(), "Invalid choice"))
		// the menu was drawn once per prompt
		require.Equal(t, 6, strings.Count(h.out.String(), "Choose an option: "))
	})

	t.Run("action errors are shown and the loop continues", func(t *testing.T) {
		h := newHarness(t, "3\n\n2\n\n0\n")
		require.NoError(t, h.d.Run(context.Background()))

		require.Equal(t, 1, h.calls["fail"])
		require.Equal(t, 1, h.calls["pull"])
		require.Contains(t, h.out.String(), "push rejected")
	})

	t.Run("end of input exits", func(t *testing.T) {
		h := newHarness(t, "1\n")
		require.NoError(t, h.d.Run(context.Background()))
		require.Equal(t, Exited, h.d.State())
		require.Equal(t, 1, h.calls["status"])
	})

	t.Run("canceled context stops the loop", func(t *testing.T) {
		h := newHarness(t, "1\n\n0\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, h.d.Run(ctx), context.Canceled)
		require.Empty(t, h.calls)
	})

	t.Run("menu lists actions in key order with the exit key last", func(t *testing.T) {
		h := newHarness(t, "0\n")
		h.d.Header = func() string { return "repo: notes" }
		require.NoError(t, h.d.Run(context.Background()))

		out := h.out.String()
		require.Contains(t, out, "repo: notes")
		status := strings.Index(out, "Status")
		pull := strings.Index(out, "Pull")
		exit := strings.Index(out, "Exit")
		require.True(t, status < pull && pull < exit, out)
	})
}

func TestRegister(t *testing.T) {
	splog := output.NewSplog()
	d := New("t", prompt.NewLinePrompter(strings.NewReader(""), &bytes.Buffer{}), splog)
	noop := func(context.Context) error { return nil }

	require.NoError(t, d.Register(Action{Key: 1, Name: "a", Run: noop}))
	require.ErrorContains(t, d.Register(Action{Key: 1, Name: "b", Run: noop}), "already bound")
	require.ErrorContains(t, d.Register(Action{Key: 0, Name: "c", Run: noop}), "reserved")
	require.ErrorContains(t, d.Register(Action{Key: 2, Name: "d"}), "no operation")
}

func TestLookup(t *testing.T) {
	h := newHarness(t, "")

	a, exit, ok := h.d.Lookup(" 2 ")
	require.True(t, ok)
	require.False(t, exit)
	require.Equal(t, "pull", a.Name)

	_, exit, ok = h.d.Lookup("0")
	require.True(t, ok)
	require.True(t, exit)

	_, _, ok = h.d.Lookup("two")
	require.False(t, ok)
}
