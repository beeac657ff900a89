package runner

import (
	"context"
	"fmt"
	"strings"
)

// Call records one invocation seen by a Fake
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a command line
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Fake is a scripted Runner for tests. Responses are matched by command-line
// prefix; a prefix with several queued results hands them out in order and keeps
// repeating the last one.
type Fake struct {
	Calls     []Call
	responses map[string][]Result
	order     []string
	errs      map[string]error
}

// NewFake creates an empty Fake that answers every command with exit 0
func NewFake() *Fake {
	return &Fake{
		responses: make(map[string][]Result),
		errs:      make(map[string]error),
	}
}

// On queues results for commands starting with prefix (for example "git push")
func (f *Fake) On(prefix string, results ...Result) *Fake {
	if _, ok := f.responses[prefix]; !ok {
		f.order = append(f.order, prefix)
	}
	f.responses[prefix] = append(f.responses[prefix], results...)
	return f
}

// Fail makes commands starting with prefix return err as if they could not start
func (f *Fake) Fail(prefix string, err error) *Fake {
	f.errs[prefix] = err
	return f
}

// Count returns how many recorded calls start with prefix
func (f *Fake) Count(prefix string) int {
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c.String(), prefix) {
			n++
		}
	}
	return n
}

// Run implements Runner
func (f *Fake) Run(_ context.Context, dir, name string, args ...string) (Result, error) {
	call := Call{Dir: dir, Name: name, Args: args}
	f.Calls = append(f.Calls, call)
	line := call.String()

	for prefix, err := range f.errs {
		if strings.HasPrefix(line, prefix) {
			return Result{Command: name, Args: args, ExitCode: -1}, fmt.Errorf("%s: %w", line, err)
		}
	}

	// longest matching prefix wins
	best := ""
	for _, prefix := range f.order {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return Result{Command: name, Args: args}, nil
	}

	queue := f.responses[best]
	res := queue[0]
	if len(queue) > 1 {
		f.responses[best] = queue[1:]
	}
	res.Command = name
	res.Args = args
	return res, nil
}
