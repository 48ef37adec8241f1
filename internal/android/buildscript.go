// SPDX-License-Identifier: MPL-2.0

package android

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/kafitra/lynxlink/internal/managedblock"
	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

const buildIndent = "    "

var (
	dependenciesPattern = regexp.MustCompile(`dependencies\s*\{`)
	// projectDependencyPattern matches project(':name') with either quote
	// style, as used by every dependency configuration and call form.
	projectDependencyPattern = regexp.MustCompile(`project\(\s*['"]:([^'"]+)['"]\s*\)`)
)

// InjectBuildScript writes an implementation line per module into the
// managed region of buildFile. A new region is opened right after the first
// "dependencies {"; a build file without one is an error.
//
// Modules the user already wired by hand, through any project(':<name>')
// reference outside the managed region and outside a // comment, are left
// out so Gradle does not see the dependency twice.
func InjectBuildScript(buildFile string, mods []*lynxmod.Descriptor) error {
	content, err := os.ReadFile(buildFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrBuildScriptNotFound, buildFile)
		}
		return fmt.Errorf("failed to read %s: %w", buildFile, err)
	}

	block := managedblock.Block{
		Start:  GradleMarkerStart,
		End:    GradleMarkerEnd,
		Lines:  BuildScriptLines(string(content), mods),
		Indent: buildIndent,
	}
	anchor := managedblock.AfterPattern(dependenciesPattern, "\n"+buildIndent)

	updated, err := managedblock.Apply(string(content), block, anchor)
	if err != nil {
		if errors.Is(err, managedblock.ErrAnchorNotFound) {
			return fmt.Errorf("could not find a `dependencies {` block in %s: %w", buildFile, err)
		}
		return fmt.Errorf("failed to update %s: %w", buildFile, err)
	}

	return writeIfChanged(buildFile, updated)
}

// BuildScriptLines renders the managed body for mods given the current build
// file content.
func BuildScriptLines(content string, mods []*lynxmod.Descriptor) []string {
	handWired := handWiredProjects(content)

	var lines []string
	for _, mod := range mods {
		project := mod.ProjectName()
		if handWired[project] {
			continue
		}
		lines = append(lines, fmt.Sprintf("implementation project(':%s')", project))
	}

	if len(lines) == 0 {
		return []string{noModulesComment}
	}
	return lines
}

// handWiredProjects returns the project names referenced outside the managed
// region. Text after // on a line is a comment and does not count.
func handWiredProjects(content string) map[lynxmod.ProjectName]bool {
	outside := managedblock.Without(content, GradleMarkerStart, GradleMarkerEnd)
	projects := make(map[lynxmod.ProjectName]bool)
	for _, line := range strings.Split(outside, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		for _, m := range projectDependencyPattern.FindAllStringSubmatch(line, -1) {
			projects[lynxmod.ProjectName(m[1])] = true
		}
	}
	return projects
}
