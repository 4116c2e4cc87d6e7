// Package common provides shared constants, types, and utilities
// used across wgctl.
package common

import "errors"

// Sentinel errors for tunnel lifecycle operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Process errors.
	ErrSpawn       = errors.New("command could not be started")
	ErrEmptyArgv   = errors.New("empty command line")
	ErrProbe       = errors.New("tunnel status probe failed")
	ErrInteraction = errors.New("user interaction failed")

	// Filesystem errors.
	ErrInstall = errors.New("failed to install configuration file")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// History errors.
	ErrHistory = errors.New("history store error")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

// MarkError attaches a sentinel to err so that errors.Is matches both.
func MarkError(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return &markedError{sentinel: sentinel, err: err}
}

type markedError struct {
	sentinel error
	err      error
}

func (e *markedError) Error() string {
	return e.sentinel.Error() + ": " + e.err.Error()
}

func (e *markedError) Unwrap() []error {
	return []error{e.sentinel, e.err}
}
