// Package common provides shared constants, types, and utilities
// used across wgctl.
package common

import (
	"context"
	"time"
)

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
}

// Lifecycle actions recorded in history.
const (
	ActionInstall = "install"
	ActionUp      = "up"
	ActionDown    = "down"
	ActionRun     = "run"
)

// LifecycleEvent is one recorded step of a wgctl invocation.
type LifecycleEvent struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	Time      time.Time `json:"time" yaml:"time"`
	Action    string    `json:"action" yaml:"action"`
	Interface string    `json:"interface,omitempty" yaml:"interface,omitempty"`
	ExitCode  int       `json:"exit_code" yaml:"exit_code"`
	Detail    string    `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// EventRecorder persists lifecycle events.
type EventRecorder interface {
	// Record stores a single event.
	Record(ctx context.Context, event LifecycleEvent) error
}
