// SPDX-License-Identifier: MPL-2.0

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

type (
	// Result bundles the modules found by a scan with the diagnostics produced
	// along the way.
	Result struct {
		// Modules are the extension descriptors in discovery order, unique by
		// package identity and by module name.
		Modules []*lynxmod.Descriptor
		// Diagnostics are non-fatal findings (unreadable directories, dropped
		// duplicates) for the caller to render.
		Diagnostics []Diagnostic
		// SearchedDirs lists the dependency directories that were scanned,
		// nearest first.
		SearchedDirs []string
	}

	// MetadataError is returned when a package carries a lynx.module.json that
	// cannot be parsed or validated. It aborts the scan.
	MetadataError struct {
		PackageName string
		Path        string
		Err         error
	}

	// state is the bookkeeping for one scan. It is created per call and never
	// shared, so concurrent scans of different roots do not interfere.
	state struct {
		options      scanOptions
		seenPackages map[string]bool
		seenModules  map[lynxmod.ModuleName]bool
		result       *Result
	}
)

// Error implements the error interface.
func (e *MetadataError) Error() string {
	return fmt.Sprintf("invalid metadata in package %q: %v", e.PackageName, e.Err)
}

// Unwrap returns the underlying parse or validation error.
func (e *MetadataError) Unwrap() error { return e.Err }

// Scan discovers the extension modules visible from projectRoot.
func Scan(projectRoot string, opts ...Option) ([]*lynxmod.Descriptor, error) {
	result, err := ScanWithDiagnostics(projectRoot, opts...)
	if err != nil {
		return nil, err
	}
	return result.Modules, nil
}

// ScanWithDiagnostics is like Scan but also returns the non-fatal diagnostics
// and the list of searched directories.
func ScanWithDiagnostics(projectRoot string, opts ...Option) (*Result, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root %q: %w", projectRoot, err)
	}

	s := &state{
		options:      resolveOptions(opts),
		seenPackages: make(map[string]bool),
		seenModules:  make(map[lynxmod.ModuleName]bool),
		result:       &Result{},
	}

	var found []*lynxmod.Descriptor
	for _, dir := range s.dependencyDirs(absRoot) {
		s.result.SearchedDirs = append(s.result.SearchedDirs, dir)
		batch, err := s.scanDependencyDir(dir)
		if err != nil {
			return nil, err
		}
		found = append(found, batch...)
	}

	s.result.Modules = s.dedupeByName(found)
	return s.result, nil
}

// dependencyDirs returns every existing <dir>/node_modules from start up to
// the filesystem root, nearest first.
func (s *state) dependencyDirs(start string) []string {
	var dirs []string
	current := start
	for {
		candidate := filepath.Join(current, s.options.dependencyDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			dirs = append(dirs, candidate)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dirs
		}
		current = parent
	}
}

func (s *state) scanDependencyDir(dir string) ([]*lynxmod.Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.warn(CodeDependencyDirUnreadable, dir, err,
			"failed to list %s while scanning for Lynx modules: %v", dir, err)
		return nil, nil
	}

	var found []*lynxmod.Descriptor
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if strings.HasPrefix(name, "@") {
			scoped, err := s.scanScopeDir(filepath.Join(dir, name), name)
			if err != nil {
				return nil, err
			}
			found = append(found, scoped...)
			continue
		}

		desc, err := s.loadPackage(filepath.Join(dir, name), name)
		if err != nil {
			return nil, err
		}
		if desc != nil {
			found = append(found, desc)
		}
	}
	return found, nil
}

// scanScopeDir scans the packages of one @scope directory.
func (s *state) scanScopeDir(scopeDir, scope string) ([]*lynxmod.Descriptor, error) {
	entries, err := os.ReadDir(scopeDir)
	if err != nil {
		s.warn(CodeScopeDirUnreadable, scopeDir, err,
			"failed to list scope directory %s: %v", scopeDir, err)
		return nil, nil
	}

	var found []*lynxmod.Descriptor
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		desc, err := s.loadPackage(filepath.Join(scopeDir, entry.Name()), scope+"/"+entry.Name())
		if err != nil {
			return nil, err
		}
		if desc != nil {
			found = append(found, desc)
		}
	}
	return found, nil
}

// loadPackage returns the descriptor of the package at packageDir, or nil if
// the package was already seen, is not a directory or is not an extension.
func (s *state) loadPackage(packageDir, packageName string) (*lynxmod.Descriptor, error) {
	if s.seenPackages[packageName] {
		return nil, nil
	}

	// os.Stat follows symlinks, which pnpm and workspaces use for every package.
	info, err := os.Stat(packageDir)
	if err != nil {
		s.warn(CodePackageStatFailed, packageDir, err,
			"skipping %s: %v", packageDir, err)
		return nil, nil
	}
	if !info.IsDir() {
		return nil, nil
	}

	metaPath := filepath.Join(packageDir, lynxmod.MetadataFileName)
	if _, err := os.Stat(metaPath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	desc, err := lynxmod.ParseFile(metaPath)
	if err != nil {
		return nil, &MetadataError{PackageName: packageName, Path: metaPath, Err: err}
	}

	if desc.Android.GradleProjectName == "" {
		desc.Android.GradleProjectName = lynxmod.ToProjectName(packageName)
	}
	desc.PackageDir = packageDir
	desc.PackageName = packageName

	s.seenPackages[packageName] = true
	return desc, nil
}

// dedupeByName keeps the first descriptor for each module name.
func (s *state) dedupeByName(found []*lynxmod.Descriptor) []*lynxmod.Descriptor {
	kept := make([]*lynxmod.Descriptor, 0, len(found))
	firstOwner := make(map[lynxmod.ModuleName]string, len(found))
	for _, desc := range found {
		if s.seenModules[desc.Name] {
			s.warn(CodeModuleNameDuplicate, desc.PackageDir, nil,
				"module %q from package %s is ignored: already provided by %s",
				desc.Name, desc.PackageName, firstOwner[desc.Name])
			continue
		}
		s.seenModules[desc.Name] = true
		firstOwner[desc.Name] = desc.PackageName
		kept = append(kept, desc)
	}
	return kept
}

func (s *state) warn(code, path string, cause error, format string, args ...any) {
	s.result.Diagnostics = append(s.result.Diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
		Cause:    cause,
	})
}
