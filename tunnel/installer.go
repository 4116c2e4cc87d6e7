package tunnel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yllada/wgctl/common"
)

// Installer copies configuration files into the canonical directory.
type Installer struct {
	dir string
}

// NewInstaller creates an Installer writing into dir.
func NewInstaller(dir string) *Installer {
	return &Installer{dir: dir}
}

// Destination is where src is stored: the canonical directory plus the
// source's own base name, independent of the interface name.
func (i *Installer) Destination(src string) string {
	return filepath.Join(i.dir, filepath.Base(src))
}

// Install copies src into the canonical directory and returns the stored
// path. When src already lives inside the directory an existing destination
// is deleted before the content is rewritten. This is not atomic: a failed
// write after the delete loses the previous file.
func (i *Installer) Install(src string) (string, error) {
	dst := i.Destination(src)

	data, err := os.ReadFile(src)
	if err != nil {
		return "", common.MarkError(common.ErrInstall, fmt.Errorf("failed to read source file: %w", err))
	}

	if common.IsWithin(src, i.dir) && common.IsRegularFile(dst) {
		common.LogDebug("Removing previous %s", dst)
		if err := os.Remove(dst); err != nil {
			return "", common.MarkError(common.ErrInstall, fmt.Errorf("failed to remove %s: %w", dst, err))
		}
	}

	if err := os.WriteFile(dst, data, 0600); err != nil {
		return "", common.MarkError(common.ErrInstall, fmt.Errorf("failed to write destination file: %w", err))
	}

	common.LogInfo("Installed %s as %s", src, dst)
	return dst, nil
}
