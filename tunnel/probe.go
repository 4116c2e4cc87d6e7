package tunnel

import (
	"context"
	"fmt"

	"github.com/yllada/wgctl/common"
)

// State is a point-in-time snapshot of the tunnel. It may be stale as soon
// as it is returned.
type State struct {
	online bool
	status string
}

// Offline is the state with no active tunnel.
func Offline() State {
	return State{}
}

// Online is the state of an active tunnel described by status, which must
// not be empty.
func Online(status string) State {
	return State{online: true, status: status}
}

// IsOnline reports whether a tunnel was active.
func (s State) IsOnline() bool {
	return s.online
}

// Status returns the status text of an online tunnel, "" otherwise.
func (s State) Status() string {
	return s.status
}

// String returns a human-readable state.
func (s State) String() string {
	if s.online {
		return "Online"
	}
	return "Offline"
}

// Probe queries the status command.
type Probe struct {
	runner Runner
	argv   []string
}

// NewProbe creates a Probe running argv, normally ["wg"].
func NewProbe(runner Runner, argv []string) *Probe {
	return &Probe{
		runner: runner,
		argv:   argv,
	}
}

// CurrentConnection runs the status command. Any captured stdout means
// Online; no stdout means Offline whatever the exit code. Only a failure to
// start the command is returned as an error.
func (p *Probe) CurrentConnection(ctx context.Context) (State, error) {
	result, err := p.runner.Run(ctx, p.argv, true)
	if err != nil {
		return State{}, common.MarkError(common.ErrProbe, err)
	}

	if result.Stdout == nil {
		if !result.Success() {
			// Not distinguished from "no tunnel"; kept visible in the log only.
			common.LogWarn("%s exited with %d and no output: %s",
				FormatCommand(p.argv), result.ExitCode, result.StderrText())
		}
		return Offline(), nil
	}

	if !result.Success() {
		common.LogWarn("%s exited with %d", FormatCommand(p.argv), result.ExitCode)
	}
	return Online(*result.Stdout), nil
}

// Describe formats a state for display.
func Describe(state State, parser StatusParser) string {
	if !state.IsOnline() {
		return "Offline"
	}
	if name, ok := parser.ParseStatus(state.Status()); ok {
		return fmt.Sprintf("Online (%s)", name)
	}
	return "Online"
}
