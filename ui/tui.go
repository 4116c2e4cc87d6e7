// Package ui provides the interactive frontends for wgctl.
// This file contains the terminal frontend built on bubbletea.
package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yllada/wgctl/tunnel"
)

var errUnexpectedModel = errors.New("unexpected model returned by prompt")

// TUI is a tunnel.Interactor drawing its prompts in the terminal.
type TUI struct {
	runner    TeaRunner
	title     string
	flagToken string
	options   []tea.ProgramOption
}

var _ tunnel.Interactor = (*TUI)(nil)

// NewTUI creates a terminal frontend. flagToken is emitted for a checked
// primary-install box.
func NewTUI(title, flagToken string, opts ...tea.ProgramOption) *TUI {
	return NewCustomTeaRunnerTUI(&defaultTeaRunner{}, title, flagToken, opts...)
}

// NewCustomTeaRunnerTUI creates a terminal frontend running its programs
// through runner.
func NewCustomTeaRunnerTUI(runner TeaRunner, title, flagToken string, opts ...tea.ProgramOption) *TUI {
	return &TUI{
		runner:    runner,
		title:     title,
		flagToken: flagToken,
		options:   opts,
	}
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.options...)
	final, err := t.runner.Run(model, opts...)
	if err != nil {
		return nil, fmt.Errorf("terminal prompt failed: %w", err)
	}
	return final, nil
}

// AskYesNo asks a yes/no question.
func (t *TUI) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	final, err := t.run(ctx, newConfirmModel(t.title, prompt))
	if err != nil {
		return false, err
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, errUnexpectedModel
	}
	return m.Confirmed(), nil
}

// RequestFileAndFlag shows the file form and returns "path:flag".
func (t *TUI) RequestFileAndFlag(ctx context.Context, prompt string, labels []string) (string, bool, error) {
	final, err := t.run(ctx, newFileFormModel(t.title, prompt, labels))
	if err != nil {
		return "", false, err
	}
	m, ok := final.(fileFormModel)
	if !ok {
		return "", false, errUnexpectedModel
	}
	if !m.Submitted() {
		return "", false, nil
	}
	return m.Response(t.flagToken), true, nil
}

// PresentStatus shows the status and reports whether Disconnect was chosen.
func (t *TUI) PresentStatus(ctx context.Context, status string) (bool, error) {
	final, err := t.run(ctx, newStatusModel(t.title, status))
	if err != nil {
		return false, err
	}
	m, ok := final.(statusModel)
	if !ok {
		return false, errUnexpectedModel
	}
	return m.Confirmed(), nil
}

// Notify shows message until it is dismissed.
func (t *TUI) Notify(ctx context.Context, message string) error {
	final, err := t.run(ctx, newNoticeModel(t.title, message))
	if err != nil {
		return err
	}
	if _, ok := final.(noticeModel); !ok {
		return errUnexpectedModel
	}
	return nil
}
