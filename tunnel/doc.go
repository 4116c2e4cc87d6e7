// Package tunnel manages the lifecycle of a single WireGuard interface.
//
// The package is organized around these types:
//
//   - Runner: executes the external tools and normalizes their output
//   - Selector: asks for a configuration file and validates the answer
//   - Installer: copies the chosen file into the canonical directory
//   - Probe: queries the status tool and classifies the tunnel as Online or Offline
//   - StatusParser: recovers the interface name from status text
//   - Controller: the state machine tying the above together
//
// # Lifecycle
//
// A run starts with a probe:
//
//  1. Offline: select a file, install it and run "wg-quick up <name>",
//     asking the user whether to retry after each failure
//  2. After a successful bring-up the tunnel is probed again and, when
//     Online, the disconnect prompt is offered right away
//  3. Online: show the status and, on confirmation, run "wg-quick down <name>"
//
// The result of a run is a process exit code: 0 for success or a declined
// disconnect, 1 when the user gave up or the status could not be parsed, 255
// when an external command could not be started or the tunnel tool failed
// during disconnect.
//
// # Concurrency
//
// A Controller is not safe for concurrent use. Every external command blocks
// until it exits; cancelling the context kills it.
package tunnel
