package tunnel

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/wgctl/common"
	"github.com/yllada/wgctl/config"
)

type controllerFixture struct {
	cfg    *config.Config
	runner *scriptedRunner
	ui     *scriptedUI
	peer   string
}

func newFixture(t *testing.T) *controllerFixture {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.ConfigDir = t.TempDir()

	peer := filepath.Join(t.TempDir(), "peer.conf")
	require.NoError(t, os.WriteFile(peer, []byte(sampleConfig), 0600))

	return &controllerFixture{
		cfg:    cfg,
		runner: newScriptedRunner(),
		ui:     &scriptedUI{},
		peer:   peer,
	}
}

func (f *controllerFixture) controller() *Controller {
	return NewController(f.cfg, f.runner, f.ui)
}

func TestNewController(t *testing.T) {
	f := newFixture(t)
	c := f.controller()

	require.NotNil(t, c)
	assert.NotEmpty(t, c.RunID())
	assert.Equal(t, f.cfg.ConfigDir, c.installer.dir)
	assert.Equal(t, []string{"wg-quick"}, c.control)
	assert.NotEqual(t, c.RunID(), f.controller().RunID())
}

// Scenario: the probe reports no output, so the tunnel is Offline and the
// connect flow asks for a file.
func TestController_OfflineStartsConnectFlow(t *testing.T) {
	f := newFixture(t)
	f.runner.on("wg", exited(0))

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitAbandoned, code)
	assert.Equal(t, []string{"Path to config file", "Rename and store as wg0"}, f.ui.labels)
	assert.Equal(t, []string{InvalidSelectionPrompt}, f.ui.asked)
}

func TestController_InvalidSelectionRetried(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", exited(0), printed(0, wgStatus)).
		on("wg-quick up wg0", exited(0))
	f.ui.responses = []string{"/not/a/file.conf:TRUE", f.peer + ":TRUE"}
	f.ui.answers = []bool{true}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitOK, code)
	assert.Equal(t, []string{InvalidSelectionPrompt}, f.ui.asked)
	assert.Equal(t, 1, f.runner.count("wg-quick up wg0"))
}

func TestController_ConnectThenOfferDisconnect(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", exited(0), printed(0, wgStatus)).
		on("wg-quick up wg0", exited(0))
	f.ui.responses = []string{f.peer + ":TRUE"}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitOK, code)
	assert.Equal(t, 2, f.runner.count("wg"))
	require.Len(t, f.ui.shown, 1, "a fresh connection offers a disconnect")
	assert.Equal(t, *NormalizeOutput(wgStatus), f.ui.shown[0])
	assert.Zero(t, f.runner.count("wg-quick down wg0"))

	installed, err := os.ReadFile(filepath.Join(f.cfg.ConfigDir, "peer.conf"))
	require.NoError(t, err)
	assert.Equal(t, sampleConfig, string(installed))
}

func TestController_ControlCommandPrefix(t *testing.T) {
	f := newFixture(t)
	f.cfg.ControlCommand = []string{"sudo", "-n", "wg-quick"}
	f.runner.
		on("wg", exited(0), printed(0, wgStatus)).
		on("sudo -n wg-quick up wg0", exited(0)).
		on("sudo -n wg-quick down wg0", exited(0))
	f.ui.responses = []string{f.peer + ":TRUE"}
	f.ui.disconnect = []bool{true}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitOK, code)
	assert.Equal(t, 1, f.runner.count("sudo -n wg-quick up wg0"))
	assert.Equal(t, 1, f.runner.count("sudo -n wg-quick down wg0"))
	assert.Equal(t, []string{"sudo", "-n", "wg-quick"}, f.cfg.ControlCommand, "prefix is not modified")
}

func TestController_NonPrimaryUsesFileStem(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", exited(0), printed(0, "interface: peer")).
		on("wg-quick up peer", exited(0))
	f.ui.responses = []string{f.peer + ":FALSE"}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitOK, code)
	assert.Equal(t, 1, f.runner.count("wg-quick up peer"))
}

// Scenario: bring-up exits 1 and the user declines to retry.
func TestController_BringUpFailureDeclined(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", exited(0)).
		on("wg-quick up wg0", failedWith(1, "RTNETLINK answers: Operation not permitted"))
	f.ui.responses = []string{f.peer + ":TRUE"}
	f.ui.answers = []bool{false}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitAbandoned, code)
	assert.Equal(t, []string{RetryConnectPrompt}, f.ui.asked)
	require.Len(t, f.ui.notified, 1)
	assert.Contains(t, f.ui.notified[0], "Operation not permitted")
	assert.Equal(t, 1, f.runner.count("wg"), "no re-probe after a failed connect")

	_, err := os.Stat(filepath.Join(f.cfg.ConfigDir, "peer.conf"))
	assert.NoError(t, err, "installed file is kept after a failed bring-up")
}

func TestController_BringUpRetryDoesNotReselect(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", exited(0), exited(0)).
		on("wg-quick up wg0", exited(1), exited(1), exited(0))
	f.ui.responses = []string{f.peer + ":TRUE"}
	f.ui.answers = []bool{true, true}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitOK, code)
	assert.Equal(t, 3, f.runner.count("wg-quick up wg0"))
	assert.Equal(t, []string{RetryConnectPrompt, RetryConnectPrompt}, f.ui.asked)
	assert.Len(t, f.ui.notified, 2)
	assert.Contains(t, f.ui.notified[0], "exit code 1")
	assert.Empty(t, f.ui.shown, "still offline after bring-up, nothing to disconnect")
}

func TestController_BringUpSpawnFault(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", exited(0)).
		on("wg-quick up wg0", spawnFault())
	f.ui.responses = []string{f.peer + ":TRUE"}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitFatal, code)
	assert.Equal(t, []string{CommandFailureMessage}, f.ui.notified)
	assert.Empty(t, f.ui.asked, "spawn faults are never retried")
}

func TestController_InstallFailure(t *testing.T) {
	f := newFixture(t)
	f.cfg.ConfigDir = filepath.Join(t.TempDir(), "missing")
	f.runner.on("wg", exited(0))
	f.ui.responses = []string{f.peer + ":TRUE"}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitFatal, code)
	assert.Zero(t, f.runner.count("wg-quick up wg0"))
	require.Len(t, f.ui.notified, 1)
}

func TestController_InitialProbeFault(t *testing.T) {
	f := newFixture(t)
	f.runner.on("wg", spawnFault())

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitFatal, code)
	assert.Nil(t, f.ui.labels, "nothing is asked after a probe fault")
}

func TestController_ReprobeFault(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", exited(0), spawnFault()).
		on("wg-quick up wg0", exited(0))
	f.ui.responses = []string{f.peer + ":TRUE"}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitFatal, code)
	assert.Empty(t, f.ui.shown)
}

// Scenario: a parsed interface is brought down successfully and the next
// probe reports Offline.
func TestController_DisconnectConfirmed(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", printed(0, wgStatus), exited(0)).
		on("wg-quick down wg0", exited(0))
	f.ui.disconnect = []bool{true}

	code := f.controller().Run(context.Background())
	assert.Equal(t, common.ExitOK, code)
	assert.Equal(t, 1, f.runner.count("wg-quick down wg0"))

	state, err := NewProbe(f.runner, f.cfg.StatusCommand).CurrentConnection(context.Background())
	require.NoError(t, err)
	assert.False(t, state.IsOnline())
}

func TestController_DisconnectDeclined(t *testing.T) {
	f := newFixture(t)
	f.runner.on("wg", printed(0, wgStatus))
	f.ui.disconnect = []bool{false}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitOK, code)
	assert.Zero(t, f.runner.count("wg-quick down wg0"))
}

func TestController_DisconnectUnparseableStatus(t *testing.T) {
	f := newFixture(t)
	f.runner.on("wg", printed(0, "peer: abc=\n  endpoint: 1.2.3.4:51820"))
	f.ui.disconnect = []bool{true}

	code := f.controller().Run(context.Background())

	assert.Equal(t, common.ExitAbandoned, code)
	assert.Len(t, f.runner.calls, 1, "no bring-down with an unknown name")
}

func TestController_DisconnectFailure(t *testing.T) {
	tests := []struct {
		name string
		down step
	}{
		{"non-zero exit", failedWith(1, "wg-quick: `wg0' is not a WireGuard interface")},
		{"spawn fault", spawnFault()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.runner.
				on("wg", printed(0, wgStatus)).
				on("wg-quick down wg0", tt.down)
			f.ui.disconnect = []bool{true}

			assert.Equal(t, common.ExitFatal, f.controller().Run(context.Background()))
		})
	}
}

func TestController_DisconnectOffline(t *testing.T) {
	f := newFixture(t)

	code := f.controller().Disconnect(context.Background(), Offline())

	assert.Equal(t, common.ExitOK, code)
	assert.Empty(t, f.ui.shown)
}

func TestController_InteractionFaults(t *testing.T) {
	broken := errors.New("dialog crashed")

	t.Run("ask", func(t *testing.T) {
		f := newFixture(t)
		f.runner.on("wg", exited(0))
		f.ui.askErr = broken

		assert.Equal(t, common.ExitFatal, f.controller().Run(context.Background()))
	})

	t.Run("request", func(t *testing.T) {
		f := newFixture(t)
		f.runner.on("wg", exited(0))
		f.ui.requestErr = broken

		assert.Equal(t, common.ExitFatal, f.controller().Run(context.Background()))
		assert.Empty(t, f.ui.asked)
	})

	t.Run("present", func(t *testing.T) {
		f := newFixture(t)
		f.runner.on("wg", printed(0, wgStatus))
		f.ui.presentErr = broken

		assert.Equal(t, common.ExitFatal, f.controller().Run(context.Background()))
	})

	t.Run("notify", func(t *testing.T) {
		f := newFixture(t)
		f.runner.
			on("wg", exited(0)).
			on("wg-quick up wg0", exited(1))
		f.ui.responses = []string{f.peer + ":TRUE"}
		f.ui.notifyErr = broken

		assert.Equal(t, common.ExitFatal, f.controller().Run(context.Background()))
		assert.Empty(t, f.ui.asked)
	})
}

func TestController_RecordsEvents(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", printed(0, wgStatus), exited(0)).
		on("wg-quick down wg0", exited(0))
	f.ui.disconnect = []bool{true}

	recorder := &memoryRecorder{}
	notifier := &recordingNotifier{}
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	c := f.controller()
	c.SetRecorder(recorder)
	c.SetNotifier(notifier)
	c.now = func() time.Time { return fixed }

	require.Equal(t, common.ExitOK, c.Run(context.Background()))

	assert.Equal(t, []string{common.ActionDown, common.ActionRun}, recorder.actions())
	for _, e := range recorder.events {
		assert.Equal(t, c.RunID(), e.RunID)
		assert.Equal(t, fixed, e.Time)
	}
	assert.Equal(t, "wg0", recorder.events[0].Interface)
	assert.Equal(t, []string{"VPN Disconnected"}, notifier.titles)
	assert.Equal(t, []string{"Disconnected from wg0"}, notifier.messages)
}

func TestController_RecordsConnectAttempts(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", exited(0), exited(0)).
		on("wg-quick up wg0", failedWith(1, "busy"), exited(0))
	f.ui.responses = []string{f.peer + ":TRUE"}
	f.ui.answers = []bool{true}

	recorder := &memoryRecorder{}
	notifier := &recordingNotifier{}
	c := f.controller()
	c.SetRecorder(recorder)
	c.SetNotifier(notifier)

	require.Equal(t, common.ExitOK, c.Run(context.Background()))

	assert.Equal(t, []string{common.ActionInstall, common.ActionUp, common.ActionUp, common.ActionRun}, recorder.actions())
	assert.Equal(t, 1, recorder.events[1].ExitCode)
	assert.Equal(t, "busy", recorder.events[1].Detail)
	assert.Equal(t, []string{"VPN Connected"}, notifier.titles)
}

func TestController_SinkFailuresDoNotChangeResult(t *testing.T) {
	f := newFixture(t)
	f.runner.on("wg", printed(0, wgStatus))
	f.ui.disconnect = []bool{false}

	c := f.controller()
	c.SetRecorder(&memoryRecorder{err: errors.New("disk full")})
	c.SetNotifier(&recordingNotifier{err: errors.New("no bus")})

	assert.Equal(t, common.ExitOK, c.Run(context.Background()))
}

func TestController_NotificationFailureLoggedAsWarning(t *testing.T) {
	var logs bytes.Buffer
	common.GetLogger().SetOutput(&logs)
	t.Cleanup(func() { common.GetLogger().SetOutput(os.Stderr) })

	f := newFixture(t)
	f.runner.
		on("wg", printed(0, wgStatus)).
		on("wg-quick down wg0", exited(0))
	f.ui.disconnect = []bool{true}

	c := f.controller()
	c.SetNotifier(&recordingNotifier{err: errors.New("org.freedesktop.DBus.Error.ServiceUnknown")})

	assert.Equal(t, common.ExitOK, c.Run(context.Background()))
	assert.Contains(t, logs.String(), "Tunnel is Online (wg0)")
	assert.Contains(t, logs.String(), "[WARN]")
	assert.Contains(t, logs.String(), "Desktop notification failed: org.freedesktop.DBus.Error.ServiceUnknown")
}

type fixedParser string

func (p fixedParser) ParseStatus(string) (string, bool) {
	return string(p), p != ""
}

func TestController_CustomStatusParser(t *testing.T) {
	f := newFixture(t)
	f.runner.
		on("wg", printed(0, "tunnel office is up")).
		on("wg-quick down office", exited(0))
	f.ui.disconnect = []bool{true}

	c := f.controller()
	c.SetStatusParser(fixedParser("office"))

	assert.Equal(t, common.ExitOK, c.Run(context.Background()))
	assert.Equal(t, 1, f.runner.count("wg-quick down office"))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "Abort", Abort.String())
	assert.Equal(t, "Retry", Retry.String())
	assert.Equal(t, "Unknown", Decision(7).String())
}
