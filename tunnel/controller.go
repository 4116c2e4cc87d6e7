// Package tunnel manages the WireGuard tunnel lifecycle.
// This file contains the Controller, which decides between connecting and
// disconnecting and drives the retry loops.
package tunnel

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yllada/wgctl/common"
	"github.com/yllada/wgctl/config"
)

// Prompts shown at the retry points of the connect flow.
const (
	InvalidSelectionPrompt = "You have not selected a valid file. Do you want to continue?"
	RetryConnectPrompt     = "Failed to connect. Try again?"
	CommandFailureMessage  = "Command failure"
)

// Controller is the lifecycle state machine. Each Run probes the tunnel
// once and then either connects (Offline) or offers to disconnect (Online).
type Controller struct {
	probe     *Probe
	selector  *Selector
	installer *Installer
	parser    StatusParser
	runner    Runner
	ui        Interactor
	control   []string
	primary   string

	notifier common.Notifier
	recorder common.EventRecorder
	runID    string
	now      func() time.Time
}

// NewController wires the lifecycle components from cfg.
func NewController(cfg *config.Config, runner Runner, ui Interactor) *Controller {
	return &Controller{
		probe:     NewProbe(runner, cfg.StatusCommand),
		selector:  NewSelector(ui, cfg.FlagToken, cfg.MaxConfigSize, cfg.PrimaryInterface),
		installer: NewInstaller(cfg.ConfigDir),
		parser:    WGStatusParser{},
		runner:    runner,
		ui:        ui,
		control:   cfg.ControlCommand,
		primary:   cfg.PrimaryInterface,
		runID:     uuid.NewString(),
		now:       time.Now,
	}
}

// SetNotifier sets a desktop notifier for connection events.
func (c *Controller) SetNotifier(n common.Notifier) {
	c.notifier = n
}

// SetRecorder sets a store for lifecycle events.
func (c *Controller) SetRecorder(r common.EventRecorder) {
	c.recorder = r
}

// SetStatusParser replaces the status text adapter.
func (c *Controller) SetStatusParser(p StatusParser) {
	c.parser = p
}

// RunID identifies this controller's invocation in history.
func (c *Controller) RunID() string {
	return c.runID
}

// Run executes one lifecycle pass and returns the process exit code.
func (c *Controller) Run(ctx context.Context) int {
	code := c.run(ctx)
	c.record(ctx, common.ActionRun, "", code, "")
	return code
}

func (c *Controller) run(ctx context.Context) int {
	state, err := c.probe.CurrentConnection(ctx)
	if err != nil {
		common.LogError("Initial probe failed: %v", err)
		return common.ExitFatal
	}
	common.LogInfo("Tunnel is %s", Describe(state, c.parser))

	if !state.IsOnline() {
		code := c.Connect(ctx)
		if code != common.ExitOK {
			return code
		}

		state, err = c.probe.CurrentConnection(ctx)
		if err != nil {
			common.LogError("Probe after bring-up failed: %v", err)
			return common.ExitFatal
		}
		if !state.IsOnline() {
			common.LogWarn("Tunnel still reports offline after a successful bring-up")
			return code
		}
	}

	return c.Disconnect(ctx, state)
}

// Connect selects, installs and brings up a configuration.
func (c *Controller) Connect(ctx context.Context) int {
	selection, ok, err := c.awaitSelection(ctx)
	if err != nil {
		common.LogError("Config selection failed: %v", err)
		return common.ExitFatal
	}
	if !ok {
		common.LogInfo("No configuration selected")
		return common.ExitAbandoned
	}

	name := selection.InterfaceName(c.primary)

	stored, err := c.installer.Install(selection.Path)
	if err != nil {
		common.LogError("%v", err)
		c.record(ctx, common.ActionInstall, name, common.ExitFatal, err.Error())
		c.tell(ctx, fmt.Sprintf("Could not install %s", selection.Path))
		return common.ExitFatal
	}
	c.record(ctx, common.ActionInstall, name, common.ExitOK, stored)

	return c.bringUp(ctx, name)
}

// awaitSelection repeats the selection until the user picks a valid file or
// gives up.
func (c *Controller) awaitSelection(ctx context.Context) (Selection, bool, error) {
	for {
		selection, ok, err := c.selector.SelectNewConfig(ctx)
		if err != nil {
			return Selection{}, false, err
		}
		if ok {
			return selection, true, nil
		}

		decision, err := c.decide(ctx, InvalidSelectionPrompt)
		if err != nil {
			return Selection{}, false, err
		}
		if decision == Abort {
			return Selection{}, false, nil
		}
	}
}

// controlArgv appends verb and name to the control command prefix.
func (c *Controller) controlArgv(verb, name string) []string {
	argv := make([]string, 0, len(c.control)+2)
	argv = append(argv, c.control...)
	return append(argv, verb, name)
}

// bringUp runs "<control> up <name>" until it succeeds or the user stops
// retrying. The configuration is not selected again between attempts.
func (c *Controller) bringUp(ctx context.Context, name string) int {
	argv := c.controlArgv("up", name)

	for attempt := 1; ; attempt++ {
		result, err := c.runner.Run(ctx, argv, true)
		if err != nil {
			common.LogError("Could not run %s: %v", FormatCommand(argv), err)
			c.record(ctx, common.ActionUp, name, common.ExitFatal, err.Error())
			c.tell(ctx, CommandFailureMessage)
			c.desktop(common.TitleConnectionError, name+": "+CommandFailureMessage)
			return common.ExitFatal
		}

		if result.Success() {
			common.LogInfo("Interface %s up", name)
			c.record(ctx, common.ActionUp, name, common.ExitOK, "")
			c.desktop(common.TitleConnected, "Connected to "+name)
			return common.ExitOK
		}

		reason := failureReason(result)
		common.LogWarn("Bring-up attempt %d for %s failed: %s", attempt, name, reason)
		c.record(ctx, common.ActionUp, name, result.ExitCode, reason)

		if err := c.ui.Notify(ctx, fmt.Sprintf("Failed to bring up %s: %s", name, reason)); err != nil {
			common.LogError("Notify failed: %v", err)
			return common.ExitFatal
		}

		decision, err := c.decide(ctx, RetryConnectPrompt)
		if err != nil {
			common.LogError("%v", err)
			return common.ExitFatal
		}
		if decision == Abort {
			c.desktop(common.TitleConnectionError, fmt.Sprintf("%s: %s", name, reason))
			return common.ExitAbandoned
		}
	}
}

// Disconnect offers to tear down the tunnel described by state.
func (c *Controller) Disconnect(ctx context.Context, state State) int {
	if !state.IsOnline() {
		common.LogInfo("Nothing to disconnect")
		return common.ExitOK
	}

	confirmed, err := c.ui.PresentStatus(ctx, state.Status())
	if err != nil {
		common.LogError("%v", common.MarkError(common.ErrInteraction, err))
		return common.ExitFatal
	}
	if !confirmed {
		common.LogInfo("Disconnect declined")
		return common.ExitOK
	}

	name, ok := c.parser.ParseStatus(state.Status())
	if !ok {
		common.LogError("Cannot find the interface name in the status text")
		c.record(ctx, common.ActionDown, "", common.ExitAbandoned, "unparseable status")
		return common.ExitAbandoned
	}

	argv := c.controlArgv("down", name)
	result, err := c.runner.Run(ctx, argv, true)
	if err != nil {
		common.LogError("Could not run %s: %v", FormatCommand(argv), err)
		c.record(ctx, common.ActionDown, name, common.ExitFatal, err.Error())
		return common.ExitFatal
	}
	if !result.Success() {
		reason := failureReason(result)
		common.LogError("Bring-down of %s failed: %s", name, reason)
		c.record(ctx, common.ActionDown, name, result.ExitCode, reason)
		c.desktop(common.TitleConnectionError, fmt.Sprintf("%s: %s", name, reason))
		return common.ExitFatal
	}

	common.LogInfo("Interface down")
	c.record(ctx, common.ActionDown, name, common.ExitOK, "")
	c.desktop(common.TitleDisconnected, "Disconnected from "+name)
	return common.ExitOK
}

// decide turns a yes/no answer into a Decision.
func (c *Controller) decide(ctx context.Context, prompt string) (Decision, error) {
	yes, err := c.ui.AskYesNo(ctx, prompt)
	if err != nil {
		return Abort, common.MarkError(common.ErrInteraction, err)
	}
	if yes {
		return Retry, nil
	}
	return Abort, nil
}

// tell shows message through the interactor; a failure is only logged since
// the caller is already on a fatal path.
func (c *Controller) tell(ctx context.Context, message string) {
	if err := c.ui.Notify(ctx, message); err != nil {
		common.LogError("Notify failed: %v", err)
	}
}

func (c *Controller) desktop(title, message string) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Notify(title, message); err != nil {
		common.LogWarn("Desktop notification failed: %v", err)
	}
}

func (c *Controller) record(ctx context.Context, action, iface string, code int, detail string) {
	if c.recorder == nil {
		return
	}
	event := common.LifecycleEvent{
		RunID:     c.runID,
		Time:      c.now(),
		Action:    action,
		Interface: iface,
		ExitCode:  code,
		Detail:    detail,
	}
	if err := c.recorder.Record(ctx, event); err != nil {
		common.LogWarn("Could not record %s event: %v", action, err)
	}
}

func failureReason(result Result) string {
	if stderr := result.StderrText(); stderr != "" {
		return stderr
	}
	return fmt.Sprintf("exit code %d", result.ExitCode)
}
