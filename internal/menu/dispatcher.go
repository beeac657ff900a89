// Package menu implements the numbered, line-driven menu loop.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"githelper.dev/githelper/internal/output"
	"githelper.dev/githelper/internal/prompt"
)

// State is a dispatcher loop state
type State int

const (
	ShowingMenu State = iota
	RunningAction
	AwaitingContinue
	Exited
)

func (s State) String() string {
	switch s {
	case ShowingMenu:
		return "ShowingMenu"
	case RunningAction:
		return "RunningAction"
	case AwaitingContinue:
		return "AwaitingContinue"
	case Exited:
		return "Exited"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Action binds a menu key to an operation
type Action struct {
	Key   int
	Name  string
	Label string
	Run   func(ctx context.Context) error
}

// Dispatcher shows a fixed list of actions, reads one line, runs the matching action
// and waits for Enter before showing the menu again. Exactly one action runs at a time.
type Dispatcher struct {
	Title     string
	Header    func() string
	ExitKey   int
	ExitLabel string
	// OnTransition observes every state change
	OnTransition func(from, to State)

	actions  map[int]Action
	prompter prompt.Prompter
	splog    *output.Splog
	state    State
}

// New creates a dispatcher whose exit key is 0
func New(title string, p prompt.Prompter, splog *output.Splog) *Dispatcher {
	return &Dispatcher{
		Title:     title,
		ExitKey:   0,
		ExitLabel: "Exit",
		actions:   make(map[int]Action),
		prompter:  p,
		splog:     splog,
		state:     ShowingMenu,
	}
}

// Register adds an action; keys must be unique and differ from the exit key
func (d *Dispatcher) Register(actions ...Action) error {
	for _, a := range actions {
		if a.Key == d.ExitKey {
			return fmt.Errorf("key %d is reserved for %s", a.Key, d.ExitLabel)
		}
		if existing, ok := d.actions[a.Key]; ok {
			return fmt.Errorf("key %d already bound to %s", a.Key, existing.Name)
		}
		if a.Run == nil {
			return fmt.Errorf("action %s has no operation", a.Name)
		}
		d.actions[a.Key] = a
	}
	return nil
}

// Actions returns the registered actions ordered by key
func (d *Dispatcher) Actions() []Action {
	keys := make([]int, 0, len(d.actions))
	for k := range d.actions {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	list := make([]Action, 0, len(keys))
	for _, k := range keys {
		list = append(list, d.actions[k])
	}
	return list
}

// State returns the current loop state
func (d *Dispatcher) State() State {
	return d.state
}

func (d *Dispatcher) setState(next State) {
	prev := d.state
	d.state = next
	if d.OnTransition != nil && prev != next {
		d.OnTransition(prev, next)
	}
}

// Render writes the menu
func (d *Dispatcher) Render() {
	w := d.splog.Writer()
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, output.Title(d.Title))
	if d.Header != nil {
		if header := d.Header(); header != "" {
			_, _ = fmt.Fprintln(w, output.Dim(header))
		}
	}
	_, _ = fmt.Fprintln(w)
	for _, a := range d.Actions() {
		_, _ = fmt.Fprintf(w, "%s %s\n", output.Key(fmt.Sprintf("%2d)", a.Key)), a.Label)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", output.Key(fmt.Sprintf("%2d)", d.ExitKey)), d.ExitLabel)
	_, _ = fmt.Fprintln(w)
}

// Lookup parses a menu answer. exit is true for the exit key.
func (d *Dispatcher) Lookup(answer string) (action Action, exit bool, ok bool) {
	key, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return Action{}, false, false
	}
	if key == d.ExitKey {
		return Action{}, true, true
	}
	action, ok = d.actions[key]
	return action, false, ok
}

// Run loops until the exit key is chosen, input ends or ctx is canceled.
// Action errors are shown and the loop continues.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.setState(ShowingMenu)
	for d.state != Exited {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step performs one pass: show the menu, read a choice and run it.
func (d *Dispatcher) Step(ctx context.Context) error {
	d.Render()
	answer, err := d.prompter.Line("Choose an option: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			d.setState(Exited)
			return nil
		}
		return err
	}

	action, exit, ok := d.Lookup(answer)
	switch {
	case exit:
		d.setState(Exited)
		return nil
	case !ok:
		d.splog.Error("Invalid choice %q, pick one of the numbers above.", answer)
		return nil
	}

	d.setState(RunningAction)
	d.splog.Debug("running %s", action.Name)
	if err := action.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.splog.Error("%v", err)
	}

	d.setState(AwaitingContinue)
	if _, err := d.prompter.Line("\nPress Enter to continue..."); err != nil {
		if errors.Is(err, io.EOF) {
			d.setState(Exited)
			return nil
		}
		return err
	}
	d.setState(ShowingMenu)
	return nil
}
