package tunnel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yllada/wgctl/common"
)

// FieldSeparator joins the path and flag fields of a selection response.
const FieldSeparator = ":"

// SelectPrompt is the text shown when asking for a configuration file.
const SelectPrompt = "Select a client wireguard config file and hit the OK button to connect"

// Reasons a selection response is rejected.
var (
	errFieldCount = errors.New("response does not have exactly two fields")
	errEmptyPath  = errors.New("empty path")
	errNotRegular = errors.New("not an existing regular file")
	errTooLarge   = errors.New("file exceeds the size limit")
	errUnreadable = errors.New("file cannot be inspected")
)

// Selection is a validated configuration file choice.
type Selection struct {
	// Path is the absolute path of the chosen file, symlinks resolved.
	Path string
	// Primary installs the file under the primary interface name.
	Primary bool
}

// InterfaceName is the name passed to the control command: primary for a
// primary install, otherwise the file name without its extension.
func (s Selection) InterfaceName(primary string) string {
	if s.Primary {
		return primary
	}
	base := filepath.Base(s.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// Selector asks the user for a configuration file and validates the answer.
type Selector struct {
	ui        Interactor
	flagToken string
	maxSize   int64
	primary   string
}

// NewSelector creates a Selector. flagToken is the literal the interactor
// emits for a checked box and maxSize bounds the accepted file size.
func NewSelector(ui Interactor, flagToken string, maxSize int64, primary string) *Selector {
	return &Selector{
		ui:        ui,
		flagToken: flagToken,
		maxSize:   maxSize,
		primary:   primary,
	}
}

// Labels returns the form field labels shown to the user.
func (s *Selector) Labels() []string {
	return []string{
		"Path to config file",
		"Rename and store as " + s.primary,
	}
}

// SelectNewConfig asks for a file once. ok is false when the user cancelled
// or the response was rejected; err is set only if the prompt failed.
func (s *Selector) SelectNewConfig(ctx context.Context) (Selection, bool, error) {
	response, ok, err := s.ui.RequestFileAndFlag(ctx, SelectPrompt, s.Labels())
	if err != nil {
		return Selection{}, false, common.MarkError(common.ErrInteraction, err)
	}
	if !ok {
		common.LogInfo("Config selection cancelled")
		return Selection{}, false, nil
	}

	selection, err := ParseSelection(response, s.flagToken, s.maxSize)
	if err != nil {
		common.LogWarn("Rejected config selection %q: %v", response, err)
		return Selection{}, false, nil
	}

	common.LogInfo("Selected %s (primary: %v)", selection.Path, selection.Primary)
	return selection, true, nil
}

// ParseSelection validates a "path:flag" response. The returned error only
// describes why the response was rejected.
func ParseSelection(response, flagToken string, maxSize int64) (Selection, error) {
	raw := strings.TrimSpace(response)
	raw = strings.TrimSuffix(raw, FieldSeparator)

	fields := strings.Split(raw, FieldSeparator)
	if len(fields) != 2 {
		return Selection{}, fmt.Errorf("%w: got %d", errFieldCount, len(fields))
	}

	// Blank means no file; otherwise the field is the file name as given,
	// surrounding spaces included.
	path := fields[0]
	if strings.TrimSpace(path) == "" {
		return Selection{}, errEmptyPath
	}

	if !common.IsRegularFile(path) {
		return Selection{}, errNotRegular
	}

	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %v", errUnreadable, err)
		}
		path = resolved
	}

	info, err := os.Stat(path)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %v", errUnreadable, err)
	}
	if info.Size() > maxSize {
		return Selection{}, fmt.Errorf("%w: %d > %d bytes", errTooLarge, info.Size(), maxSize)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %v", errUnreadable, err)
	}

	return Selection{
		Path:    abs,
		Primary: strings.TrimSpace(fields[1]) == flagToken,
	}, nil
}
