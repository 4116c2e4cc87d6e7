package tunnel

import "strings"

// StatusParser extracts the active interface name from status text.
type StatusParser interface {
	ParseStatus(text string) (string, bool)
}

// interfacePrefix starts the first line of `wg` output for an active tunnel.
const interfacePrefix = "interface: "

// WGStatusParser understands the output of `wg` with no arguments. It only
// looks at the first line and accepts nothing but "interface: <name>".
type WGStatusParser struct{}

// ParseStatus returns the interface named on the first line of text.
func (WGStatusParser) ParseStatus(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	first, _, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)

	name, found := strings.CutPrefix(first, interfacePrefix)
	if !found {
		return "", false
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return name, true
}
