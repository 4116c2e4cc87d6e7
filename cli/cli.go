// Package cli implements the non-interactive wgctl subcommands.
// These let users inspect the tunnel, the lifecycle history and the
// effective configuration from a terminal or a script without being
// prompted.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/yllada/wgctl/common"
	"github.com/yllada/wgctl/config"
	"github.com/yllada/wgctl/tunnel"
)

// detailWidth bounds the DETAIL column of the history table.
const detailWidth = 48

// EventLister returns recorded lifecycle events, newest first.
type EventLister interface {
	Recent(ctx context.Context, limit int) ([]common.LifecycleEvent, error)
}

// CLI represents the command-line interface.
type CLI struct {
	cfg     *config.Config
	probe   *tunnel.Probe
	parser  tunnel.StatusParser
	history EventLister
	out     io.Writer
	now     func() time.Time
}

// New creates a new CLI instance writing to out.
func New(cfg *config.Config, runner tunnel.Runner, out io.Writer) *CLI {
	return &CLI{
		cfg:    cfg,
		probe:  tunnel.NewProbe(runner, cfg.StatusCommand),
		parser: tunnel.WGStatusParser{},
		out:    out,
		now:    time.Now,
	}
}

// SetHistory attaches the event store used by History.
func (c *CLI) SetHistory(h EventLister) {
	c.history = h
}

// Status shows the current tunnel state followed by the raw status text.
func (c *CLI) Status(ctx context.Context) error {
	state, err := c.probe.CurrentConnection(ctx)
	if err != nil {
		return fmt.Errorf("failed to query tunnel status: %w", err)
	}

	iface := "-"
	if name, ok := c.parser.ParseStatus(state.Status()); ok {
		iface = name
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tINTERFACE")
	fmt.Fprintln(w, "-----\t---------")
	fmt.Fprintf(w, "%s\t%s\n", state, iface)
	w.Flush()

	if state.IsOnline() {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, state.Status())
	}
	return nil
}

// History prints up to limit recorded lifecycle events.
func (c *CLI) History(ctx context.Context, limit int) error {
	if c.history == nil {
		fmt.Fprintln(c.out, "History is disabled.")
		fmt.Fprintf(c.out, "Set history_path in %s to enable it.\n", common.ConfigFileName)
		return nil
	}

	events, err := c.history.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(events) == 0 {
		fmt.Fprintln(c.out, "No recorded events.")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tAGO\tRUN\tACTION\tINTERFACE\tEXIT\tDETAIL")
	fmt.Fprintln(w, "----\t---\t---\t------\t---------\t----\t------")

	now := c.now()
	for _, e := range events {
		// Truncate run ID for display
		shortID := e.RunID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		iface := e.Interface
		if iface == "" {
			iface = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			e.Time.Local().Format("2006-01-02 15:04:05"),
			formatDuration(now.Sub(e.Time)),
			shortID, e.Action, iface, e.ExitCode,
			truncate(oneLine(e.Detail), detailWidth))
	}

	w.Flush()
	return nil
}

// ShowConfig prints the effective configuration as YAML.
func (c *CLI) ShowConfig() error {
	data, err := c.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = c.out.Write(data)
	return err
}

// InitConfig writes the default configuration to path. An existing file is
// only replaced when force is set.
func (c *CLI) InitConfig(path string, force bool) error {
	if !force && common.FileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "✓ Wrote default configuration to %s\n", path)
	return nil
}

// formatDuration formats a duration in a human-readable format.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if s == "" {
		return "-"
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
