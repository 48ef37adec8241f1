// SPDX-License-Identifier: MPL-2.0

package android

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultAndroidDir is the Android directory relative to the project root.
const DefaultAndroidDir = "android"

var (
	// ErrAndroidDirNotFound is returned when the Android directory is missing.
	ErrAndroidDirNotFound = errors.New("android directory not found")
	// ErrBuildScriptNotFound is returned when app/build.gradle is missing.
	ErrBuildScriptNotFound = errors.New("build.gradle not found")
	// ErrManifestNotFound is returned when the app manifest is missing.
	ErrManifestNotFound = errors.New("AndroidManifest.xml not found")
	// ErrMissingPackageDir is returned when a module has no package directory,
	// so its Gradle project directory cannot be computed.
	ErrMissingPackageDir = errors.New("module has no package directory")
)

// Layout holds the absolute paths of the artifacts in a host project.
type Layout struct {
	ProjectRoot  string
	AndroidDir   string
	AppDir       string
	SettingsFile string
	BuildFile    string
	ManifestFile string
}

// NewLayout resolves the artifact paths for projectRoot. androidDir may be
// absolute or relative to projectRoot; empty means DefaultAndroidDir.
func NewLayout(projectRoot, androidDir string) (Layout, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to resolve project root %q: %w", projectRoot, err)
	}
	if androidDir == "" {
		androidDir = DefaultAndroidDir
	}
	if !filepath.IsAbs(androidDir) {
		androidDir = filepath.Join(root, androidDir)
	}
	androidDir = filepath.Clean(androidDir)
	appDir := filepath.Join(androidDir, "app")

	return Layout{
		ProjectRoot:  root,
		AndroidDir:   androidDir,
		AppDir:       appDir,
		SettingsFile: filepath.Join(androidDir, "settings.gradle"),
		BuildFile:    filepath.Join(appDir, "build.gradle"),
		ManifestFile: filepath.Join(appDir, "src", "main", "AndroidManifest.xml"),
	}, nil
}

// Check verifies that the Android directory exists.
func (l Layout) Check() error {
	info, err := os.Stat(l.AndroidDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrAndroidDirNotFound, l.AndroidDir)
	}
	return nil
}

// RegistryFile returns the path of the generated registry for javaPackage.
func (l Layout) RegistryFile(javaPackage string) string {
	return RegistryPath(l.AppDir, javaPackage)
}

// Rel returns path relative to the project root with forward slashes, for
// display. Paths outside the root are returned unchanged.
func (l Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.ProjectRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

// writeIfChanged writes content to path unless the file already holds
// exactly that content. Existing file permissions are kept.
func writeIfChanged(path, content string) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
		if current, err := os.ReadFile(path); err == nil && string(current) == content {
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
