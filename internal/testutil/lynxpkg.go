// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// WriteLynxPackage creates an npm package named packageName under
// dependencyDir whose lynx.module.json has the given content, plus an empty
// Android source directory. It returns the package directory.
func WriteLynxPackage(t testing.TB, dependencyDir, packageName, metadata string) string {
	t.Helper()
	packageDir := filepath.Join(dependencyDir, filepath.FromSlash(packageName))
	MustWriteFile(t, filepath.Join(packageDir, "package.json"),
		fmt.Sprintf("{\"name\": %q, \"version\": \"1.0.0\"}\n", packageName))
	MustWriteFile(t, filepath.Join(packageDir, "lynx.module.json"), metadata)
	MustMkdirAll(t, filepath.Join(packageDir, "android"), 0o755)
	return packageDir
}

// ModuleJSON renders a minimal lynx.module.json for a module with a module
// class and optional permissions.
func ModuleJSON(name, moduleClass string, permissions ...string) string {
	return fmt.Sprintf(`{
  "name": %q,
  "android": {
    "moduleClass": %q,
    "sourceDir": "android",
    "permissions": [%s]
  }
}
`, name, moduleClass, quoteAll(permissions))
}

// ComponentJSON renders a minimal lynx.module.json for a UI component.
func ComponentJSON(name, componentClass, tag string, permissions ...string) string {
	return fmt.Sprintf(`{
  "name": %q,
  "android": {
    "componentClass": %q,
    "componentTag": %q,
    "sourceDir": "android",
    "permissions": [%s]
  }
}
`, name, componentClass, tag, quoteAll(permissions))
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

// Minimal host project files, shaped like a freshly generated Android app.
const (
	SettingsGradle = `rootProject.name = "demo"
include ':app'
`

	AppBuildGradle = `plugins {
    id 'com.android.application'
}

android {
    namespace 'com.kafitra.demo'
    defaultConfig {
        applicationId "com.kafitra.demo"
        minSdk 24
    }
}

dependencies {
    implementation 'org.lynxsdk.lynx:lynx:3.2.0'
}
`

	AndroidManifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android">

    <application
        android:label="demo">
    </application>
</manifest>
`
)

// WriteAndroidProject creates <projectRoot>/android with settings.gradle,
// app/build.gradle and the app manifest, and returns the android directory.
func WriteAndroidProject(t testing.TB, projectRoot string) string {
	t.Helper()
	androidDir := filepath.Join(projectRoot, "android")
	MustWriteFile(t, filepath.Join(androidDir, "settings.gradle"), SettingsGradle)
	MustWriteFile(t, filepath.Join(androidDir, "app", "build.gradle"), AppBuildGradle)
	MustWriteFile(t, filepath.Join(androidDir, "app", "src", "main", "AndroidManifest.xml"), AndroidManifest)
	return androidDir
}
