// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
var ErrInvalidColorScheme = errors.New("invalid color scheme")

type (
	// ColorScheme selects the palette used for terminal output.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Config holds the application configuration.
	Config struct {
		// AndroidDir is the Android project directory, relative to the
		// project root or absolute.
		AndroidDir string `json:"android_dir" mapstructure:"android_dir"`
		// JavaPackage overrides the package of the generated registry.
		JavaPackage string `json:"java_package" mapstructure:"java_package"`
		// DependencyDir is the directory name npm installs packages into.
		DependencyDir string `json:"dependency_dir" mapstructure:"dependency_dir"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme selects the palette: auto, dark or light.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AndroidDir:    "android",
		DependencyDir: "node_modules",
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}
