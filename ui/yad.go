// Package ui provides the interactive frontends for wgctl.
// This file contains the desktop frontend driving yad dialogs.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/yllada/wgctl/common"
	"github.com/yllada/wgctl/tunnel"
)

// YadCommand is the dialog binary used by the desktop frontend.
const YadCommand = "yad"

// Yad is a tunnel.Interactor showing GTK dialogs through yad. Every dialog
// is a child process run by a tunnel.Runner; a dialog that cannot be started
// is an interaction fault.
type Yad struct {
	runner    tunnel.Runner
	title     string
	flagToken string
}

var _ tunnel.Interactor = (*Yad)(nil)

// NewYad creates a desktop frontend.
func NewYad(runner tunnel.Runner, title, flagToken string) *Yad {
	return &Yad{
		runner:    runner,
		title:     title,
		flagToken: flagToken,
	}
}

// window returns the options shared by every dialog.
func (y *Yad) window() []string {
	return []string{
		YadCommand,
		"--image", "wireguard",
		"--fixed",
		"--center",
		"--borders=8",
		"--width=320",
		"--height=160",
		"--title", y.title,
	}
}

func (y *Yad) message(text string, question bool) []string {
	argv := append(y.window(),
		"--text", text,
		"--text-align", "center",
		"--buttons-layout", "center",
	)
	if !question {
		argv = append(argv, "--escape-ok", "--button", "Ok:0")
	}
	return argv
}

func (y *Yad) run(ctx context.Context, argv []string, capture bool) (tunnel.Result, error) {
	result, err := y.runner.Run(ctx, argv, capture)
	if err != nil {
		return tunnel.Result{}, fmt.Errorf("cannot show dialog: %w", err)
	}
	return result, nil
}

// AskYesNo shows a question dialog; OK means yes.
func (y *Yad) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	result, err := y.run(ctx, y.message(prompt, true), false)
	if err != nil {
		return false, err
	}
	return result.Success(), nil
}

// RequestFileAndFlag shows a form with a file chooser and a checkbox. yad
// prints the fields joined by ":" with a trailing separator.
func (y *Yad) RequestFileAndFlag(ctx context.Context, prompt string, labels []string) (string, bool, error) {
	if len(labels) < 2 {
		return "", false, fmt.Errorf("file form needs two labels, got %d", len(labels))
	}

	argv := append(y.window(),
		"--form",
		"--separator", tunnel.FieldSeparator,
		"--text", prompt,
		"--field", labels[0]+":FL",
		"--field", labels[1]+":CHK", y.flagToken,
	)

	result, err := y.run(ctx, argv, true)
	if err != nil {
		return "", false, err
	}
	if !result.Success() {
		common.LogDebug("File form closed with status %d", result.ExitCode)
		return "", false, nil
	}
	return result.StdoutText(), true, nil
}

// PresentStatus shows the status with a Disconnect checkbox.
func (y *Yad) PresentStatus(ctx context.Context, status string) (bool, error) {
	argv := append(y.window(),
		"--form",
		"--separator", "",
		"--text", status,
		"--field", "Disconnect:CHK",
	)

	result, err := y.run(ctx, argv, true)
	if err != nil {
		return false, err
	}
	if !result.Success() {
		return false, nil
	}
	return strings.TrimSpace(result.StdoutText()) == y.flagToken, nil
}

// Notify shows an information dialog with a single Ok button.
func (y *Yad) Notify(ctx context.Context, message string) error {
	_, err := y.run(ctx, y.message(message, false), false)
	return err
}
