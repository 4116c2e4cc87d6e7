// Package main provides the entry point for wgctl.
// wgctl drives the WireGuard tunnel lifecycle through a short interactive
// session: it probes the current tunnel, offers to connect with a chosen
// configuration file when offline, and offers to disconnect when online.
//
// Features:
//   - Terminal (bubbletea) and desktop (yad) prompts, chosen automatically
//   - Installation of the selected configuration into the WireGuard directory
//   - Desktop notifications over D-Bus
//   - Local SQLite history of every lifecycle step
//   - Non-interactive status, history and config subcommands
//
// Usage:
//
//	wgctl [flags]
//	wgctl status
//	wgctl history --limit 50
//	wgctl config show
//
// Environment:
//
//	wgctl requires wg and wg-quick to be installed, and write access to the
//	WireGuard configuration directory (normally /etc/wireguard).
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/yllada/wgctl/common"
	"github.com/yllada/wgctl/config"
	"github.com/yllada/wgctl/history"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

// app holds the persistent flags and the lifecycle exit code.
type app struct {
	configPath string
	verbose    bool
	logFile    bool
	frontend   string

	exitCode int
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code. Errors
// before or outside the lifecycle (bad flags, unreadable config) are fatal.
func run(args []string) int {
	defer common.CloseLogger()

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals (SIGINT, SIGTERM)
	setupSignalHandler(cancel)

	a := &app{}
	rootCmd := buildRootCmd(a)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return common.ExitFatal
	}
	return a.exitCode
}

// load reads the configuration, applies flag overrides and initializes the
// logger.
func (a *app) load() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if a.frontend != "" {
		switch a.frontend {
		case common.FrontendAuto, common.FrontendTUI, common.FrontendYad:
			cfg.Frontend = a.frontend
		default:
			return nil, fmt.Errorf("unknown frontend %q (want %s, %s or %s)",
				a.frontend, common.FrontendAuto, common.FrontendTUI, common.FrontendYad)
		}
	}

	// Initialize logger with file output when requested
	logLevel, err := common.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		logLevel = common.LevelInfo
	}
	if a.verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  a.logFile,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}

	common.LogDebug("Loaded configuration from %s", path)
	return cfg, nil
}

// configFile returns the path config init writes to.
func (a *app) configFile() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.DefaultPath()
}

// openHistory opens the history store, or returns nil when history is off.
func openHistory(cfg *config.Config) (*history.Store, error) {
	path, err := cfg.ResolveHistoryPath()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	return history.Open(path)
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// When a signal is received, it cancels the context; a running wg-quick or
// dialog is killed and reported as a command failure.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	}()
}

// checkToolsInstalled warns about configured commands missing from PATH.
// A missing tool is still reported by the lifecycle as a command failure.
func checkToolsInstalled(cfg *config.Config) {
	for _, tool := range []string{cfg.StatusCommand[0], cfg.ControlCommand[0]} {
		if _, err := exec.LookPath(tool); err != nil {
			common.LogWarn("%s is not installed on the system", tool)
		}
	}
}
