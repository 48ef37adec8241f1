// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

// SetConfigDir points os.UserConfigDir at a directory under root and
// returns that directory together with a cleanup function that restores the
// environment.
//
// Platform handling:
//   - Windows: sets AppData, config dir is root
//   - macOS: sets HOME, config dir is root/Library/Application Support
//   - others: sets XDG_CONFIG_HOME, config dir is root
func SetConfigDir(t testing.TB, root string) (string, func()) {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return root, MustSetenv(t, "AppData", root)
	case "darwin", "ios":
		return filepath.Join(root, "Library", "Application Support"), MustSetenv(t, "HOME", root)
	default:
		return root, MustSetenv(t, "XDG_CONFIG_HOME", root)
	}
}
