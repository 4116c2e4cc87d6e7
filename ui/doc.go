// Package ui provides the interactive frontends for wgctl.
//
// This package implements tunnel.Interactor twice:
//
//   - TUI: bubbletea prompts drawn in the terminal
//   - Yad: GTK dialogs shown by the yad binary, for desktop launchers
//
// It also provides DBusNotifier, which sends freedesktop desktop
// notifications when a tunnel goes up or down.
//
// # Frontend Selection
//
// NewInteractor honours the "frontend" setting. With "auto" the terminal UI
// is used when stdin and stdout are terminals, and yad otherwise.
//
// # Dialogs
//
// Both frontends show the same four prompts: a yes/no question, a form with a
// file path and a "Rename and store as <primary>" checkbox (checked by
// default), the current status with a Disconnect checkbox, and a plain
// message. The form answer is a single "path:flag" string so that both
// frontends feed the same parser.
//
// # Testing
//
// TUI runs its models through a TeaRunner, which tests replace. Yad runs
// yad through a tunnel.Runner.
//
// # File Organization
//
//   - frontend.go: frontend selection
//   - tui.go: terminal frontend
//   - models.go: bubbletea models for the terminal prompts
//   - tea_runner.go: program runner seam
//   - styles.go: lipgloss styles
//   - yad.go: desktop frontend
//   - notifications.go: desktop notifications over D-Bus
package ui
