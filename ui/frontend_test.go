package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yllada/wgctl/common"
	"github.com/yllada/wgctl/config"
)

func TestChooseFrontend(t *testing.T) {
	tests := []struct {
		setting     string
		interactive bool
		want        string
	}{
		{common.FrontendTUI, false, common.FrontendTUI},
		{common.FrontendYad, true, common.FrontendYad},
		{common.FrontendAuto, true, common.FrontendTUI},
		{common.FrontendAuto, false, common.FrontendYad},
		{"", true, common.FrontendTUI},
	}

	for _, tt := range tests {
		t.Run(tt.setting, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseFrontend(tt.setting, tt.interactive))
		})
	}
}

func TestNewInteractor_Explicit(t *testing.T) {
	cfg := config.DefaultConfig()

	cfg.Frontend = common.FrontendYad
	assert.IsType(t, &Yad{}, NewInteractor(cfg, &dialogRunner{}))

	cfg.Frontend = common.FrontendTUI
	tui, ok := NewInteractor(cfg, &dialogRunner{}).(*TUI)
	if assert.True(t, ok) {
		assert.Equal(t, "Wireguard", tui.title)
		assert.Equal(t, "TRUE", tui.flagToken)
	}
}
