// Package ui provides the interactive frontends for wgctl.
// This file contains the terminal styles, adapting to light and dark themes.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every terminal view.
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#88171A", Dark: "#E3A1A3"}
	colorText    = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#8B949E"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#2EC27E"}
	colorError   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
)

type uiStyles struct {
	frame    lipgloss.Style
	title    lipgloss.Style
	text     lipgloss.Style
	hint     lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	button   lipgloss.Style
	selected lipgloss.Style
	status   lipgloss.Style
	errorMsg lipgloss.Style
}

func defaultStyles() uiStyles {
	return uiStyles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1),
		text: lipgloss.NewStyle().
			Foreground(colorText),
		hint: lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1),
		label: lipgloss.NewStyle().
			Foreground(colorMuted),
		focused: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true),
		button: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorAccent).
			Bold(true).
			Padding(0, 2),
		status: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorSuccess).
			PaddingLeft(1),
		errorMsg: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),
	}
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
