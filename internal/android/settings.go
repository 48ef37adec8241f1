// SPDX-License-Identifier: MPL-2.0

package android

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kafitra/lynxlink/internal/managedblock"
	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

const (
	// GradleMarkerStart opens the managed region in Gradle files.
	GradleMarkerStart = "// lynx-autolink-start"
	// GradleMarkerEnd closes the managed region in Gradle files.
	GradleMarkerEnd = "// lynx-autolink-end"

	noModulesComment = "// No Lynx Native Modules detected."
)

// InjectSettings writes the include and projectDir lines for mods into the
// managed region of settingsFile, appending the region when the file has
// none. A missing settings file is created.
func InjectSettings(settingsFile string, mods []*lynxmod.Descriptor) error {
	lines, err := SettingsLines(filepath.Dir(settingsFile), mods)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(settingsFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", settingsFile, err)
	}

	block := managedblock.Block{
		Start: GradleMarkerStart,
		End:   GradleMarkerEnd,
		Lines: lines,
	}
	updated, err := managedblock.Apply(string(content), block, managedblock.AppendAtEnd())
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", settingsFile, err)
	}

	return writeIfChanged(settingsFile, updated)
}

// SettingsLines renders the settings.gradle body for mods. Project
// directories are relative to settingsDir and always use forward slashes.
func SettingsLines(settingsDir string, mods []*lynxmod.Descriptor) ([]string, error) {
	if len(mods) == 0 {
		return []string{noModulesComment}, nil
	}

	lines := make([]string, 0, 2*len(mods))
	for _, mod := range mods {
		if mod.PackageDir == "" {
			return nil, fmt.Errorf("module %q: %w", mod.Name, ErrMissingPackageDir)
		}
		sourceDir := filepath.FromSlash(mod.Android.SourceDir)
		if !filepath.IsAbs(sourceDir) {
			sourceDir = filepath.Join(mod.PackageDir, sourceDir)
		}
		rel, err := filepath.Rel(settingsDir, sourceDir)
		if err != nil {
			return nil, fmt.Errorf("module %q: failed to relate %s to %s: %w", mod.Name, sourceDir, settingsDir, err)
		}

		project := mod.ProjectName()
		lines = append(lines,
			fmt.Sprintf("include ':%s'", project),
			fmt.Sprintf("project(':%s').projectDir = new File(rootDir, '%s')", project, filepath.ToSlash(rel)),
		)
	}
	return lines, nil
}
