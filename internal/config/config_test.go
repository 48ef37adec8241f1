// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kafitra/lynxlink/internal/issue"
	"github.com/kafitra/lynxlink/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.AndroidDir != "android" {
		t.Errorf("expected default android dir to be android, got %q", cfg.AndroidDir)
	}

	if cfg.JavaPackage != "" {
		t.Errorf("expected default java package to be empty, got %q", cfg.JavaPackage)
	}

	if cfg.DependencyDir != "node_modules" {
		t.Errorf("expected default dependency dir to be node_modules, got %q", cfg.DependencyDir)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value ColorScheme
		want  bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"solarized", false},
		{"AUTO", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()

			ok, errs := tt.value.IsValid()
			if ok != tt.want {
				t.Fatalf("IsValid() = %v, want %v", ok, tt.want)
			}
			if tt.want {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme) {
				t.Errorf("expected ErrInvalidColorScheme, got %v", errs)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	root := t.TempDir()
	want, cleanup := testutil.SetConfigDir(t, root)
	defer cleanup()

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}

	if got != filepath.Join(want, AppName) {
		t.Errorf("ConfigDir() = %q, want %q", got, filepath.Join(want, AppName))
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := LoadWithSource(context.Background(), LoadOptions{
		ProjectRoot:   t.TempDir(),
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("LoadWithSource() error: %v", err)
	}

	if path != "" {
		t.Errorf("expected no config source, got %q", path)
	}

	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ProjectFile(t *testing.T) {
	t.Parallel()

	projectRoot := t.TempDir()
	projectFile := filepath.Join(projectRoot, ProjectFileName)
	testutil.MustWriteFile(t, projectFile, `
android_dir:  "native/android"
java_package: "com.kafitra.app"
ui: {
	color_scheme: "dark"
}
`)

	cfg, path, err := LoadWithSource(context.Background(), LoadOptions{
		ProjectRoot:   projectRoot,
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("LoadWithSource() error: %v", err)
	}

	if path != projectFile {
		t.Errorf("expected source %q, got %q", projectFile, path)
	}
	if cfg.AndroidDir != "native/android" {
		t.Errorf("AndroidDir = %q, want native/android", cfg.AndroidDir)
	}
	if cfg.JavaPackage != "com.kafitra.app" {
		t.Errorf("JavaPackage = %q, want com.kafitra.app", cfg.JavaPackage)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q, want dark", cfg.UI.ColorScheme)
	}
	// Unset keys keep their defaults.
	if cfg.DependencyDir != "node_modules" {
		t.Errorf("DependencyDir = %q, want node_modules", cfg.DependencyDir)
	}
}

func TestLoad_LookupOrder(t *testing.T) {
	t.Parallel()

	projectRoot := t.TempDir()
	cfgDir := t.TempDir()
	explicitFile := filepath.Join(t.TempDir(), "custom.cue")

	testutil.MustWriteFile(t, filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), `android_dir: "from-user"`)
	testutil.MustWriteFile(t, explicitFile, `android_dir: "from-flag"`)

	ctx := context.Background()

	cfg, _, err := LoadWithSource(ctx, LoadOptions{ProjectRoot: projectRoot, ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("LoadWithSource() error: %v", err)
	}
	if cfg.AndroidDir != "from-user" {
		t.Errorf("expected user config to apply without project file, got %q", cfg.AndroidDir)
	}

	testutil.MustWriteFile(t, filepath.Join(projectRoot, ProjectFileName), `android_dir: "from-project"`)

	cfg, _, err = LoadWithSource(ctx, LoadOptions{ProjectRoot: projectRoot, ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("LoadWithSource() error: %v", err)
	}
	if cfg.AndroidDir != "from-project" {
		t.Errorf("expected project file to win over user config, got %q", cfg.AndroidDir)
	}

	cfg, err = NewProvider().Load(ctx, LoadOptions{
		ConfigFilePath: explicitFile,
		ProjectRoot:    projectRoot,
		ConfigDirPath:  cfgDir,
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.AndroidDir != "from-flag" {
		t.Errorf("expected explicit file to win, got %q", cfg.AndroidDir)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ActionableError, got %T", err)
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("expected not-found message, got %q", err.Error())
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", `container_engine: "docker"`},
		{"wrong type", `android_dir: 42`},
		{"invalid color scheme", `ui: {color_scheme: "neon"}`},
		{"invalid java package", `java_package: "com..bad"`},
		{"dependency dir with separator", `dependency_dir: "a/b"`},
		{"syntax error", `android_dir: "unterminated`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			projectRoot := t.TempDir()
			testutil.MustWriteFile(t, filepath.Join(projectRoot, ProjectFileName), tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{
				ProjectRoot:   projectRoot,
				ConfigDirPath: t.TempDir(),
			})
			if err == nil {
				t.Fatal("expected error")
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected ActionableError, got %T", err)
			}
			if !ae.HasSuggestions() {
				t.Error("expected suggestions on config error")
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LYNXLINK_JAVA_PACKAGE", "com.from.env")
	t.Setenv("LYNXLINK_UI_VERBOSE", "true")

	projectRoot := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(projectRoot, ProjectFileName), `java_package: "com.from.file"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{
		ProjectRoot:   projectRoot,
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.JavaPackage != "com.from.env" {
		t.Errorf("expected env to override file, got %q", cfg.JavaPackage)
	}
	if !cfg.UI.Verbose {
		t.Error("expected LYNXLINK_UI_VERBOSE to enable verbose")
	}
}

func TestLoad_EnvInvalidColorScheme(t *testing.T) {
	t.Setenv("LYNXLINK_UI_COLOR_SCHEME", "neon")

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ProjectRoot:   t.TempDir(),
		ConfigDirPath: t.TempDir(),
	})
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Fatalf("expected ErrInvalidColorScheme, got %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ProjectRoot: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.JavaPackage = "com.kafitra.app"
	cfg.UI.ColorScheme = ColorSchemeLight

	projectRoot := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(projectRoot, ProjectFileName), GenerateCUE(cfg))

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{
		ProjectRoot:   projectRoot,
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}
