package tunnel

import "context"

// Interactor is the user-facing side of the lifecycle. Every call is
// synchronous and modal; an error means the prompt itself could not be shown.
type Interactor interface {
	// AskYesNo asks a yes/no question.
	AskYesNo(ctx context.Context, prompt string) (bool, error)
	// RequestFileAndFlag asks for a file path and a checkbox, returned as a
	// single "path:flagToken" response. ok is false if the user cancelled.
	RequestFileAndFlag(ctx context.Context, prompt string, labels []string) (response string, ok bool, err error)
	// PresentStatus shows the tunnel status and reports whether the user
	// asked to disconnect.
	PresentStatus(ctx context.Context, status string) (bool, error)
	// Notify shows a message.
	Notify(ctx context.Context, message string) error
}

// Decision is the user's answer at a failure point of a retry loop.
type Decision int

const (
	// Abort leaves the loop.
	Abort Decision = iota
	// Retry runs the failed step again.
	Retry
)

// String returns a human-readable decision.
func (d Decision) String() string {
	switch d {
	case Retry:
		return "Retry"
	case Abort:
		return "Abort"
	default:
		return "Unknown"
	}
}
