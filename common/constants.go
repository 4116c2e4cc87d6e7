// Package common provides shared constants, types, and utilities
// used across wgctl.
package common

// Application metadata.
const (
	// AppName is the display name of the application.
	AppName = "wgctl"
	// ConfigDirName is the name of the per-user configuration and data directory.
	ConfigDirName = "wgctl"
)

// File names used by the application.
const (
	ConfigFileName  = "config.yaml"
	HistoryFileName = "history.db"
	LogFileName     = "wgctl.log"
)

// Tunnel defaults. Each of these can be overridden through config.Config.
const (
	// DefaultConfigDir is where wg-quick looks for <interface>.conf files.
	DefaultConfigDir = "/etc/wireguard"
	// DefaultPrimaryInterface is the interface name used for primary installs.
	DefaultPrimaryInterface = "wg0"
	// DefaultFlagToken is the value the dialog layer emits for a checked box.
	DefaultFlagToken = "TRUE"
	// DefaultMaxConfigSize bounds freshly selected configuration files (1 MiB).
	DefaultMaxConfigSize = 1024 * 1024
	// DefaultDialogTitle is the title shown on every dialog.
	DefaultDialogTitle = "Wireguard"
	// DefaultStatusCommand queries the current tunnel status.
	DefaultStatusCommand = "wg"
	// DefaultControlCommand brings interfaces up and down.
	DefaultControlCommand = "wg-quick"
)

// Frontend values.
const (
	FrontendAuto = "auto"
	FrontendTUI  = "tui"
	FrontendYad  = "yad"
)

// HistoryDisabled turns off the history store when used as history_path.
const HistoryDisabled = "off"

// Process exit codes returned by the lifecycle controller.
const (
	// ExitOK covers success and a declined disconnect.
	ExitOK = 0
	// ExitAbandoned means the user gave up or the status text was unusable.
	ExitAbandoned = 1
	// ExitFatal means an external command could not be run or failed fatally.
	ExitFatal = 255
)

// Desktop notification titles.
const (
	TitleConnected       = "VPN Connected"
	TitleDisconnected    = "VPN Disconnected"
	TitleConnectionError = "Connection Error"
)
