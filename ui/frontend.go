package ui

import (
	"os"

	"golang.org/x/term"

	"github.com/yllada/wgctl/common"
	"github.com/yllada/wgctl/config"
	"github.com/yllada/wgctl/tunnel"
)

// IsInteractiveTerminal reports whether both stdin and stdout are terminals.
func IsInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ChooseFrontend resolves the configured frontend. "auto" picks the terminal
// UI when running in a terminal and yad otherwise, e.g. from a desktop
// launcher.
func ChooseFrontend(setting string, interactive bool) string {
	switch setting {
	case common.FrontendTUI, common.FrontendYad:
		return setting
	}
	if interactive {
		return common.FrontendTUI
	}
	return common.FrontendYad
}

// NewInteractor builds the frontend selected by cfg. The yad frontend runs
// its dialogs through runner.
func NewInteractor(cfg *config.Config, runner tunnel.Runner) tunnel.Interactor {
	frontend := ChooseFrontend(cfg.Frontend, IsInteractiveTerminal())
	common.LogDebug("Using %s frontend", frontend)

	if frontend == common.FrontendYad {
		return NewYad(runner, cfg.DialogTitle, cfg.FlagToken)
	}
	return NewTUI(cfg.DialogTitle, cfg.FlagToken)
}
