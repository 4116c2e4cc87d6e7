// Package tunnel manages the WireGuard tunnel lifecycle.
// This file contains the Runner used to execute external commands.
package tunnel

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/yllada/wgctl/common"
)

// Result is the outcome of a command that was started successfully.
// Stdout and Stderr are nil when not captured or when the captured stream
// held only whitespace; they are never empty strings.
type Result struct {
	ExitCode int
	Stdout   *string
	Stderr   *string
}

// Success reports whether the command exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// StdoutText returns stdout or "" when absent.
func (r Result) StdoutText() string {
	if r.Stdout == nil {
		return ""
	}
	return *r.Stdout
}

// StderrText returns stderr or "" when absent.
func (r Result) StderrText() string {
	if r.Stderr == nil {
		return ""
	}
	return *r.Stderr
}

// Runner executes external commands.
//
// A non-zero exit is reported through Result.ExitCode. An error is returned
// only when the process could not be started at all; it matches
// common.ErrSpawn.
type Runner interface {
	Run(ctx context.Context, argv []string, capture bool) (Result, error)
}

// ExecRunner runs commands with os/exec. Uncaptured output is forwarded to
// Stdout and Stderr.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner that forwards uncaptured output to the
// process's own stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts argv, waits for it and returns its exit status.
func (r *ExecRunner) Run(ctx context.Context, argv []string, capture bool) (Result, error) {
	if len(argv) == 0 || argv[0] == "" {
		return Result{}, common.MarkError(common.ErrSpawn, common.ErrEmptyArgv)
	}

	common.LogInfo("$ %s", FormatCommand(argv))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	if capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	}

	result := Result{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, common.MarkError(common.ErrSpawn, err)
		}
		// A child killed because ctx ended never produced a real exit status.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, common.MarkError(common.ErrSpawn, ctxErr)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	if capture {
		result.Stdout = NormalizeOutput(stdout.String())
		result.Stderr = NormalizeOutput(stderr.String())
	}

	common.LogDebug("exit status %d", result.ExitCode)
	return result, nil
}

// NormalizeOutput trims surrounding whitespace and maps an empty remainder
// to nil.
func NormalizeOutput(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// FormatCommand renders argv for logs, quoting arguments that need it.
func FormatCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'\\$") {
			parts[i] = strconv.Quote(arg)
		} else {
			parts[i] = arg
		}
	}
	return strings.Join(parts, " ")
}
