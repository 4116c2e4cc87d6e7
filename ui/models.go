// Package ui provides the interactive frontends for wgctl.
// This file contains the bubbletea models behind the terminal prompts.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel asks a yes/no question. Leaving without an answer means no.
type confirmModel struct {
	styles   uiStyles
	title    string
	prompt   string
	yes      bool
	answered bool
	answer   bool
}

func newConfirmModel(title, prompt string) confirmModel {
	return confirmModel{
		styles: defaultStyles(),
		title:  title,
		prompt: prompt,
		yes:    true,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "right", "h", "l", "tab", "shift+tab":
		m.yes = !m.yes
	case "y", "Y":
		m.answered, m.answer = true, true
		return m, tea.Quit
	case "n", "N":
		m.answered, m.answer = true, false
		return m, tea.Quit
	case "enter":
		m.answered, m.answer = true, m.yes
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	yes, no := m.styles.button.Render("Yes"), m.styles.button.Render("No")
	if m.yes {
		yes = m.styles.selected.Render("Yes")
	} else {
		no = m.styles.selected.Render("No")
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.title.Render(m.title),
		m.styles.text.Render(m.prompt),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, yes, "  ", no),
		m.styles.hint.Render("y/n answer | ←/→ move | enter confirm | esc cancel"),
	)
	return m.styles.frame.Render(body) + "\n"
}

// Confirmed reports whether the user answered yes.
func (m confirmModel) Confirmed() bool {
	return m.answered && m.answer
}

// Fields of the file form, in focus order.
const (
	fieldPath = iota
	fieldFlag
	fieldCount
)

// uncheckedToken is emitted for a cleared checkbox.
const uncheckedToken = "FALSE"

// fileFormModel asks for a configuration file path and the primary-install
// checkbox, which starts checked.
type fileFormModel struct {
	styles    uiStyles
	title     string
	prompt    string
	labels    []string
	path      textinput.Model
	flag      bool
	focus     int
	submitted bool
}

func newFileFormModel(title, prompt string, labels []string) fileFormModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "/path/to/peer.conf"
	ti.CharLimit = 4096
	ti.Focus()

	return fileFormModel{
		styles: defaultStyles(),
		title:  title,
		prompt: prompt,
		labels: labels,
		path:   ti,
		flag:   true,
	}
}

func (m fileFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m fileFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.submitted = true
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			return m.withFocus((m.focus + 1) % fieldCount), nil
		case " ":
			if m.focus == fieldFlag {
				m.flag = !m.flag
				return m, nil
			}
		}
	}

	if m.focus != fieldPath {
		return m, nil
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m fileFormModel) withFocus(field int) fileFormModel {
	m.focus = field
	if field == fieldPath {
		m.path.Focus()
	} else {
		m.path.Blur()
	}
	return m
}

func (m fileFormModel) label(i int, fallback string) string {
	if i < len(m.labels) && m.labels[i] != "" {
		return m.labels[i]
	}
	return fallback
}

func (m fileFormModel) View() string {
	pathLabel := m.styles.label.Render(m.label(fieldPath, "Path"))
	flagLine := checkbox(m.flag) + " " + m.label(fieldFlag, "Primary")
	if m.focus == fieldFlag {
		flagLine = m.styles.focused.Render(flagLine)
	} else {
		flagLine = m.styles.text.Render(flagLine)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(m.title),
		m.styles.text.Render(m.prompt),
		"",
		pathLabel,
		m.path.View(),
		"",
		flagLine,
		m.styles.hint.Render("tab switch field | space toggle | enter OK | esc cancel"),
	)
	return m.styles.frame.Render(body) + "\n"
}

// Submitted reports whether the form was confirmed.
func (m fileFormModel) Submitted() bool {
	return m.submitted
}

// Response renders the form as "path:flag", where flag is flagToken when the
// checkbox is set.
func (m fileFormModel) Response(flagToken string) string {
	flag := uncheckedToken
	if m.flag {
		flag = flagToken
	}
	return m.path.Value() + ":" + flag
}

// statusModel shows the tunnel status with a Disconnect checkbox.
type statusModel struct {
	styles     uiStyles
	title      string
	status     string
	disconnect bool
	submitted  bool
}

func newStatusModel(title, status string) statusModel {
	return statusModel{
		styles: defaultStyles(),
		title:  title,
		status: status,
	}
}

func (m statusModel) Init() tea.Cmd {
	return nil
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case " ", "x":
		m.disconnect = !m.disconnect
	case "enter":
		m.submitted = true
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m statusModel) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(m.title),
		m.styles.status.Render(strings.TrimRight(m.status, "\n")),
		"",
		m.styles.focused.Render(checkbox(m.disconnect)+" Disconnect"),
		m.styles.hint.Render("space toggle | enter OK | esc close"),
	)
	return m.styles.frame.Render(body) + "\n"
}

// Confirmed reports whether the user ticked Disconnect and pressed OK.
func (m statusModel) Confirmed() bool {
	return m.submitted && m.disconnect
}

// noticeModel shows a message until it is dismissed.
type noticeModel struct {
	styles    uiStyles
	title     string
	message   string
	dismissed bool
}

func newNoticeModel(title, message string) noticeModel {
	return noticeModel{
		styles:  defaultStyles(),
		title:   title,
		message: message,
	}
}

func (m noticeModel) Init() tea.Cmd {
	return nil
}

func (m noticeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "enter", " ", "esc", "q", "ctrl+c":
		m.dismissed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m noticeModel) View() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.title.Render(m.title),
		m.styles.errorMsg.Render(m.message),
		"",
		m.styles.selected.Render("Ok"),
	)
	return m.styles.frame.Render(body) + "\n"
}
