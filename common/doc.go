// Package common provides shared constants, types, utilities, and interfaces
// used throughout wgctl.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: tunnel defaults, file names, frontends and exit codes
//   - Errors: Sentinel errors for consistent error handling across packages
//   - Interfaces: Notifier and EventRecorder abstractions
//   - Logger: Leveled logging to stderr with optional rotated file output
//   - Utils: Small filesystem helpers
//
// # Usage
//
//	common.LogInfo("$ %s", strings.Join(argv, " "))
//
//	if errors.Is(err, common.ErrSpawn) {
//	    return common.ExitFatal
//	}
package common
