package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yllada/wgctl/cli"
	"github.com/yllada/wgctl/common"
	"github.com/yllada/wgctl/config"
	"github.com/yllada/wgctl/history"
	"github.com/yllada/wgctl/tunnel"
	"github.com/yllada/wgctl/ui"
)

// buildRootCmd creates the root command with all subcommands attached.
// Running the root command with no subcommand starts the tunnel lifecycle.
func buildRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wgctl",
		Short: "wgctl - WireGuard tunnel lifecycle manager",
		Long: `wgctl checks whether a WireGuard tunnel is up.

When no tunnel is active it asks for a client configuration file, installs it
into the WireGuard directory and brings the interface up with wg-quick,
offering to retry on failure. When a tunnel is active it shows its status and
offers to bring it down.

Exit status: 0 on success or a declined disconnect, 1 when the user gives up
or the status text is unusable, 255 when a command fails fatally or the
configuration cannot be loaded.`,
		Version: appVersion,
		Args:    cobra.NoArgs,
		// SilenceUsage prevents printing usage on every error.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLifecycle(cmd)
		},
	}
	rootCmd.SetVersionTemplate(versionText())

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to config file (default ~/.config/wgctl/config.yaml)")
	flags.BoolVar(&a.verbose, "verbose", false, "Enable verbose logging")
	flags.BoolVar(&a.logFile, "log-file", false, "Also write logs to ~/.local/share/wgctl/logs")
	flags.StringVar(&a.frontend, "frontend", "", "Prompt frontend: auto, tui or yad (overrides config)")

	rootCmd.AddCommand(
		buildStatusCmd(a),
		buildHistoryCmd(a),
		buildConfigCmd(a),
		buildVersionCmd(),
	)

	return rootCmd
}

// runLifecycle runs one interactive connect/disconnect session and stores
// its exit code.
func (a *app) runLifecycle(cmd *cobra.Command) error {
	cfg, err := a.load()
	if err != nil {
		return err
	}
	checkToolsInstalled(cfg)

	runner := tunnel.NewExecRunner()
	controller := tunnel.NewController(cfg, runner, ui.NewInteractor(cfg, runner))

	if cfg.Notifications {
		controller.SetNotifier(ui.NewDBusNotifier())
	}

	store, err := openHistory(cfg)
	if err != nil {
		common.LogWarn("History disabled: %v", err)
	} else if store != nil {
		defer store.Close()
		controller.SetRecorder(store)
	}

	common.LogInfo("Starting %s %s (run %s)", common.AppName, appVersion, controller.RunID())
	a.exitCode = controller.Run(cmd.Context())

	if a.exitCode != common.ExitOK {
		common.LogWarn("Exited with code %d", a.exitCode)
	}
	return nil
}

func buildStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current tunnel status",
		Long: `Query the status command once and print whether a tunnel is active,
the interface it uses and the full status text. Nothing is prompted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			return cli.New(cfg, tunnel.NewExecRunner(), cmd.OutOrStdout()).Status(cmd.Context())
		},
	}
}

func buildHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded lifecycle events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}

			c := cli.New(cfg, tunnel.NewExecRunner(), cmd.OutOrStdout())

			store, err := openHistory(cfg)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
				c.SetHistory(store)
			}

			return c.History(cmd.Context(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "Maximum number of events to show")
	return cmd
}

func buildConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			return cli.New(cfg, tunnel.NewExecRunner(), cmd.OutOrStdout()).ShowConfig()
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFile()
			if err != nil {
				return err
			}
			return cli.New(config.DefaultConfig(), tunnel.NewExecRunner(), cmd.OutOrStdout()).InitConfig(path, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func versionText() string {
	text := fmt.Sprintf("%s v%s\n", common.AppName, appVersion)
	if buildTime != "unknown" {
		text += fmt.Sprintf("  Build:  %s\n  Commit: %s\n", buildTime, commitSHA)
	}
	return text
}

func printVersion(w io.Writer) {
	fmt.Fprint(w, versionText())
}
