// SPDX-License-Identifier: MPL-2.0

package android

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kafitra/lynxlink/internal/managedblock"
	"github.com/kafitra/lynxlink/internal/testutil"
	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

func TestInjectBuildScript(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	build := filepath.Join(root, "build.gradle")
	testutil.MustWriteFile(t, build, "android {}\n\ndependencies {\n    implementation 'x:y:1'\n}\n")

	mods := []*lynxmod.Descriptor{
		moduleDesc(root, "A", "com.example.A"),
		componentDesc(root, "B", "com.example.X", "cam"),
	}
	if err := InjectBuildScript(build, mods); err != nil {
		t.Fatalf("InjectBuildScript() error: %v", err)
	}

	want := "android {}\n\ndependencies {\n" +
		"    // lynx-autolink-start\n" +
		"    implementation project(':lynx-a')\n" +
		"    implementation project(':lynx-b')\n" +
		"    // lynx-autolink-end\n" +
		"    implementation 'x:y:1'\n}\n"
	if got := testutil.MustReadFile(t, build); got != want {
		t.Errorf("build.gradle =\n%s\nwant\n%s", got, want)
	}
}

func TestInjectBuildScript_SkipsHandWiredModules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wired    string
		skipped  bool
		mentions int
	}{
		{"single quotes", `implementation project(':lynx-a')`, true, 1},
		{"double quotes", `implementation project(":lynx-a")`, true, 1},
		{"parenthesized call", `implementation(project(':lynx-a'))`, true, 1},
		{"api configuration", `api project(':lynx-a')`, true, 1},
		{"spaced argument", `implementation project( ':lynx-a' )`, true, 1},
		{"trailing comment", `implementation project(':lynx-a') // pinned`, true, 1},
		{"commented out", `// implementation project(':lynx-a')`, false, 2},
		{"other project", `implementation project(':lynx-ab')`, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			build := filepath.Join(root, "build.gradle")
			testutil.MustWriteFile(t, build, "dependencies {\n\t"+tt.wired+"\n}\n")

			mods := []*lynxmod.Descriptor{
				moduleDesc(root, "A", "com.example.A"),
				moduleDesc(root, "B", "com.example.B"),
			}
			if err := InjectBuildScript(build, mods); err != nil {
				t.Fatalf("InjectBuildScript() error: %v", err)
			}

			got := testutil.MustReadFile(t, build)
			generated := strings.Contains(got, "    implementation project(':lynx-a')\n")
			if generated == tt.skipped {
				t.Errorf("lynx-a generated = %v, want %v:\n%s", generated, !tt.skipped, got)
			}
			if n := strings.Count(got, ":lynx-a'") + strings.Count(got, ":lynx-a\""); n != tt.mentions {
				t.Errorf("lynx-a referenced %d times, want %d:\n%s", n, tt.mentions, got)
			}
			if !strings.Contains(got, "    implementation project(':lynx-b')\n") {
				t.Errorf("lynx-b missing from managed region:\n%s", got)
			}
		})
	}
}

func TestInjectBuildScript_Idempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	build := filepath.Join(root, "build.gradle")
	testutil.MustWriteFile(t, build, testutil.AppBuildGradle)
	mods := []*lynxmod.Descriptor{moduleDesc(root, "A", "com.example.A")}

	if err := InjectBuildScript(build, mods); err != nil {
		t.Fatal(err)
	}
	first := testutil.MustReadFile(t, build)
	if err := InjectBuildScript(build, mods); err != nil {
		t.Fatal(err)
	}
	if second := testutil.MustReadFile(t, build); second != first {
		t.Errorf("second run changed build.gradle:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if n := strings.Count(first, "implementation project(':lynx-a')"); n != 1 {
		t.Errorf("dependency appears %d times, want 1", n)
	}
}

func TestInjectBuildScript_Empty(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	build := filepath.Join(root, "build.gradle")
	testutil.MustWriteFile(t, build, "dependencies {\n}\n")

	if err := InjectBuildScript(build, nil); err != nil {
		t.Fatal(err)
	}
	want := "dependencies {\n    // lynx-autolink-start\n    // No Lynx Native Modules detected.\n    // lynx-autolink-end\n}\n"
	if got := testutil.MustReadFile(t, build); got != want {
		t.Errorf("build.gradle = %q, want %q", got, want)
	}
}

func TestInjectBuildScript_Errors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	err := InjectBuildScript(filepath.Join(root, "missing.gradle"), nil)
	if !errors.Is(err, ErrBuildScriptNotFound) {
		t.Errorf("missing file error = %v, want ErrBuildScriptNotFound", err)
	}

	noDeps := filepath.Join(root, "build.gradle")
	testutil.MustWriteFile(t, noDeps, "android {}\n")
	err = InjectBuildScript(noDeps, nil)
	if !errors.Is(err, managedblock.ErrAnchorNotFound) {
		t.Errorf("no dependencies block error = %v, want ErrAnchorNotFound", err)
	}
	if got := testutil.MustReadFile(t, noDeps); got != "android {}\n" {
		t.Errorf("file modified on failure: %q", got)
	}
}
