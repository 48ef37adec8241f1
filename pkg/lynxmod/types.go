// SPDX-License-Identifier: MPL-2.0

package lynxmod

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidModuleName is the sentinel error wrapped by InvalidModuleNameError.
	ErrInvalidModuleName = errors.New("invalid module name")
	// ErrInvalidClassName is the sentinel error wrapped by InvalidClassNameError.
	ErrInvalidClassName = errors.New("invalid class name")
	// ErrInvalidProjectName is the sentinel error wrapped by InvalidProjectNameError.
	ErrInvalidProjectName = errors.New("invalid gradle project name")
	// ErrInvalidPermission is the sentinel error wrapped by InvalidPermissionError.
	ErrInvalidPermission = errors.New("invalid permission")

	// classNamePattern matches a fully-qualified Java class name: at least two
	// dot-separated identifiers, each starting with a letter, '_' or '$'.
	classNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)+$`)
)

type (
	// ModuleName is the key a module is registered under with the Lynx runtime
	// (e.g. "LynxDeviceInfo"). Unique within a scan.
	ModuleName string

	// InvalidModuleNameError is returned when a ModuleName is empty or blank.
	InvalidModuleNameError struct {
		Value ModuleName
	}

	// ClassName is a fully-qualified Java class name such as
	// "com.kafitra.lynxcamera.LynxCameraView".
	ClassName string

	// InvalidClassNameError is returned when a ClassName is not fully qualified.
	InvalidClassNameError struct {
		Value ClassName
	}

	// ProjectName is a Gradle project name as used in include ':<name>'.
	// Explicit overrides from metadata are accepted as long as they are not
	// blank and contain no quote or colon that would break the generated Gradle.
	ProjectName string

	// InvalidProjectNameError is returned when a ProjectName cannot be used
	// inside a Gradle project path.
	InvalidProjectNameError struct {
		Value ProjectName
	}

	// Permission is an Android permission identifier such as
	// "android.permission.CAMERA".
	Permission string

	// InvalidPermissionError is returned when a Permission is blank or would
	// break the generated XML attribute.
	InvalidPermissionError struct {
		Value Permission
	}

	// AndroidConfig is the "android" section of lynx.module.json.
	AndroidConfig struct {
		// ModuleClass is the LynxModule implementation (optional).
		ModuleClass ClassName `json:"moduleClass,omitempty" yaml:"moduleClass,omitempty" toml:"moduleClass,omitempty"`
		// ComponentClass is the native UI element implementation (optional).
		ComponentClass ClassName `json:"componentClass,omitempty" yaml:"componentClass,omitempty" toml:"componentClass,omitempty"`
		// ComponentTag is the markup tag bound to ComponentClass. Set iff ComponentClass is.
		ComponentTag string `json:"componentTag,omitempty" yaml:"componentTag,omitempty" toml:"componentTag,omitempty"`
		// SourceDir is the Android library directory, relative to the package root.
		SourceDir string `json:"sourceDir" yaml:"sourceDir" toml:"sourceDir"`
		// GradleProjectName overrides the project name derived from the package name.
		GradleProjectName ProjectName `json:"gradleProjectName,omitempty" yaml:"gradleProjectName,omitempty" toml:"gradleProjectName,omitempty"`
		// Permissions lists Android permissions the module needs.
		Permissions []Permission `json:"permissions,omitempty" yaml:"permissions,omitempty" toml:"permissions,omitempty"`
	}

	// Descriptor is a validated, normalized lynx.module.json plus the location
	// the scanner found it at.
	Descriptor struct {
		Name    ModuleName    `json:"name" yaml:"name" toml:"name"`
		Android AndroidConfig `json:"android" yaml:"android" toml:"android"`

		// PackageDir is the absolute package root. Set by the scanner.
		PackageDir string `json:"packageDir,omitempty" yaml:"packageDir,omitempty" toml:"packageDir,omitempty"`
		// PackageName is the npm identifier ("@scope/name" or "name"). Set by the scanner.
		PackageName string `json:"packageName,omitempty" yaml:"packageName,omitempty" toml:"packageName,omitempty"`
	}
)

// String returns the string representation of the ModuleName.
func (n ModuleName) String() string { return string(n) }

// IsValid returns whether the ModuleName is non-blank.
func (n ModuleName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidModuleNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModuleNameError.
func (e *InvalidModuleNameError) Error() string {
	return fmt.Sprintf("invalid module name %q: must be a non-empty string", e.Value)
}

// Unwrap returns ErrInvalidModuleName for errors.Is() compatibility.
func (e *InvalidModuleNameError) Unwrap() error { return ErrInvalidModuleName }

// String returns the string representation of the ClassName.
func (c ClassName) String() string { return string(c) }

// IsValid returns whether the ClassName is a fully-qualified Java class name.
func (c ClassName) IsValid() (bool, []error) {
	if !classNamePattern.MatchString(string(c)) {
		return false, []error{&InvalidClassNameError{Value: c}}
	}
	return true, nil
}

// Error implements the error interface for InvalidClassNameError.
func (e *InvalidClassNameError) Error() string {
	return fmt.Sprintf("invalid class name %q: must be a fully-qualified Java class name (e.g. \"com.example.MyModule\")", e.Value)
}

// Unwrap returns ErrInvalidClassName for errors.Is() compatibility.
func (e *InvalidClassNameError) Unwrap() error { return ErrInvalidClassName }

// String returns the string representation of the ProjectName.
func (p ProjectName) String() string { return string(p) }

// IsValid returns whether the ProjectName can be embedded in a Gradle
// project path.
func (p ProjectName) IsValid() (bool, []error) {
	s := string(p)
	if strings.TrimSpace(s) == "" || strings.ContainsAny(s, `'":`+"\n") {
		return false, []error{&InvalidProjectNameError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidProjectNameError.
func (e *InvalidProjectNameError) Error() string {
	return fmt.Sprintf("invalid gradle project name %q: must be non-empty and contain no quotes or colons", e.Value)
}

// Unwrap returns ErrInvalidProjectName for errors.Is() compatibility.
func (e *InvalidProjectNameError) Unwrap() error { return ErrInvalidProjectName }

// String returns the string representation of the Permission.
func (p Permission) String() string { return string(p) }

// IsValid returns whether the Permission is non-blank and safe to embed in
// an XML attribute.
func (p Permission) IsValid() (bool, []error) {
	s := string(p)
	if strings.TrimSpace(s) == "" || strings.ContainsAny(s, `"<>&`) {
		return false, []error{&InvalidPermissionError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPermissionError.
func (e *InvalidPermissionError) Error() string {
	return fmt.Sprintf("invalid permission %q: must be a non-empty permission identifier", e.Value)
}

// Unwrap returns ErrInvalidPermission for errors.Is() compatibility.
func (e *InvalidPermissionError) Unwrap() error { return ErrInvalidPermission }

// HasModule reports whether the descriptor contributes a runtime module.
func (d *Descriptor) HasModule() bool { return d.Android.ModuleClass != "" }

// HasComponent reports whether the descriptor contributes a UI element.
func (d *Descriptor) HasComponent() bool { return d.Android.ComponentClass != "" }

// ProjectName returns the Gradle project name for the descriptor: the
// explicit override if present, otherwise the name derived from the package
// (or, lacking a package name, the module name).
func (d *Descriptor) ProjectName() ProjectName {
	if d.Android.GradleProjectName != "" {
		return d.Android.GradleProjectName
	}
	if d.PackageName != "" {
		return ToProjectName(d.PackageName)
	}
	return ToProjectName(string(d.Name))
}

// Identity returns the package name when known, else the module name.
// Used for display.
func (d *Descriptor) Identity() string {
	if d.PackageName != "" {
		return d.PackageName
	}
	return string(d.Name)
}
