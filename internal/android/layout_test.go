// SPDX-License-Identifier: MPL-2.0

package android

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/kafitra/lynxlink/internal/testutil"
)

func TestNewLayout(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	l, err := NewLayout(root, "")
	if err != nil {
		t.Fatalf("NewLayout() error: %v", err)
	}
	if l.AndroidDir != filepath.Join(root, "android") {
		t.Errorf("AndroidDir = %q", l.AndroidDir)
	}
	if l.BuildFile != filepath.Join(root, "android", "app", "build.gradle") {
		t.Errorf("BuildFile = %q", l.BuildFile)
	}
	if l.ManifestFile != filepath.Join(root, "android", "app", "src", "main", "AndroidManifest.xml") {
		t.Errorf("ManifestFile = %q", l.ManifestFile)
	}
	if got := l.Rel(l.SettingsFile); got != "android/settings.gradle" {
		t.Errorf("Rel(SettingsFile) = %q", got)
	}
	if got := l.Rel(l.RegistryFile("com.example")); got != "android/app/src/main/java/com/example/LynxAutolinkRegistry.java" {
		t.Errorf("Rel(RegistryFile) = %q", got)
	}

	if err := l.Check(); !errors.Is(err, ErrAndroidDirNotFound) {
		t.Errorf("Check() = %v, want ErrAndroidDirNotFound", err)
	}
	testutil.MustMkdirAll(t, l.AndroidDir, 0o755)
	if err := l.Check(); err != nil {
		t.Errorf("Check() after mkdir = %v", err)
	}
}

func TestNewLayout_CustomAndroidDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "native")

	l, err := NewLayout(root, "platforms/android")
	if err != nil {
		t.Fatal(err)
	}
	if l.AndroidDir != filepath.Join(root, "platforms", "android") {
		t.Errorf("relative AndroidDir = %q", l.AndroidDir)
	}

	l, err = NewLayout(root, abs)
	if err != nil {
		t.Fatal(err)
	}
	if l.AndroidDir != abs {
		t.Errorf("absolute AndroidDir = %q", l.AndroidDir)
	}
	if got := l.Rel(l.SettingsFile); got != filepath.Join(abs, "settings.gradle") {
		t.Errorf("Rel() outside root = %q, want absolute path", got)
	}
}
