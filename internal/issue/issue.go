// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	AndroidDirNotFoundId Id = iota + 1
	ModuleMetadataInvalidId
	ApplicationIdNotFoundId
	InvalidJavaPackageId
	BuildScriptInvalidId
	ManifestInvalidId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	var extraMd strings.Builder
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			extraMd.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			extraMd.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(string(i.mdMsg)+extraMd.String(), stylePath)
}

const autolinkingDocs HttpLink = "https://github.com/kafitramarna/kafitra-lynx-native#auto-linking"

var (
	render = glamour.Render

	androidDirNotFoundIssue = &Issue{
		id: AndroidDirNotFoundId,
		mdMsg: `
# Android project not found!

lynxlink looks for the native Android project inside your app, by default
in the ` + "`android`" + ` directory next to ` + "`package.json`" + `.

## Things you can try:
- Run the command from your app's root directory, or pass it explicitly:
~~~
$ lynxlink link --project-root apps/demo
~~~

- If the Android project lives elsewhere, point lynxlink at it:
~~~
$ lynxlink link --android-dir platforms/android
~~~

- Or set it once in ` + "`lynxlink.cue`" + `:
~~~cue
android_dir: "platforms/android"
~~~`,
		docLinks: []HttpLink{autolinkingDocs},
	}

	moduleMetadataInvalidIssue = &Issue{
		id: ModuleMetadataInvalidId,
		mdMsg: `
# Invalid lynx.module.json!

An installed package declares itself a Lynx native module, but its
` + "`lynx.module.json`" + ` could not be parsed or validated. Linking stops so that a
broken module is never half-wired into your app.

## A valid lynx.module.json:
~~~json
{
  "name": "LynxCamera",
  "android": {
    "componentClass": "com.kafitra.lynxcamera.LynxCameraView",
    "componentTag": "camera",
    "sourceDir": "android",
    "permissions": ["android.permission.CAMERA"]
  }
}
~~~

## Rules:
- ` + "`name`" + ` and ` + "`android.sourceDir`" + ` are required
- At least one of ` + "`moduleClass`" + ` and ` + "`componentClass`" + ` is required
- Class names must be fully qualified (` + "`com.example.MyModule`" + `)
- ` + "`componentTag`" + ` is required whenever ` + "`componentClass`" + ` is set

## Things you can try:
- Check a package directly:
~~~
$ lynxlink validate node_modules/lynx-camera
~~~

- Update the package, or report the problem to its maintainers`,
		docLinks: []HttpLink{autolinkingDocs},
	}

	applicationIdNotFoundIssue = &Issue{
		id: ApplicationIdNotFoundId,
		mdMsg: `
# Could not determine the Java package!

The generated ` + "`LynxAutolinkRegistry`" + ` class is placed in your app's Java
package, which lynxlink reads from ` + "`applicationId`" + ` in ` + "`android/app/build.gradle`" + `.

## Things you can try:
- Add an applicationId to the defaultConfig block:
~~~groovy
android {
    defaultConfig {
        applicationId "com.example.myapp"
    }
}
~~~

- Or pass the package explicitly:
~~~
$ lynxlink link --java-package com.example.myapp
~~~`,
		docLinks: []HttpLink{autolinkingDocs},
	}

	invalidJavaPackageIssue = &Issue{
		id: InvalidJavaPackageId,
		mdMsg: `
# Invalid Java package!

The Java package for the generated registry must be dot-separated Java
identifiers, such as ` + "`com.example.myapp`" + `. Dashes, empty segments and
segments starting with a digit are not allowed.

## Things you can try:
- Check the value passed to ` + "`--java-package`" + ` or set in ` + "`lynxlink.cue`" + `
- Check ` + "`applicationId`" + ` in ` + "`android/app/build.gradle`" + ``,
		docLinks: []HttpLink{autolinkingDocs},
	}

	buildScriptInvalidIssue = &Issue{
		id: BuildScriptInvalidId,
		mdMsg: `
# Could not update app/build.gradle!

lynxlink adds one ` + "`implementation project(...)`" + ` line per module inside the
` + "`dependencies { }`" + ` block of ` + "`android/app/build.gradle`" + `. The file is missing or
has no such block.

## Things you can try:
- Make sure ` + "`android/app/build.gradle`" + ` exists (Kotlin DSL files are not supported)
- Add an empty dependencies block if there is none:
~~~groovy
dependencies {
}
~~~

- Files already updated by this run (see the output above) keep their changes;
  run ` + "`lynxlink link`" + ` again after fixing the problem`,
		docLinks: []HttpLink{autolinkingDocs},
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Could not update AndroidManifest.xml!

Module permissions are inserted right before the ` + "`<application>`" + ` element of
` + "`android/app/src/main/AndroidManifest.xml`" + `.

## Things you can try:
- Make sure the manifest has an ` + "`<application>`" + ` element
- Or add the managed markers yourself where permissions should go:
~~~xml
<!-- lynx-autolink-permissions-start -->
<!-- lynx-autolink-permissions-end -->
~~~`,
		docLinks: []HttpLink{autolinkingDocs},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

lynxlink reads an optional CUE configuration file from, in order:
1. The path given with ` + "`--config`" + `
2. ` + "`lynxlink.cue`" + ` in the project root
3. ` + "`lynxlink/config.cue`" + ` in your user configuration directory

## Example:
~~~cue
android_dir:    "android"
java_package:   "com.example.myapp"
dependency_dir: "node_modules"
ui: {
	verbose:      false
	color_scheme: "auto"
}
~~~

## Things you can try:
- Check the CUE syntax and field names
- Print the effective configuration:
~~~
$ lynxlink config show
~~~`,
		docLinks: []HttpLink{autolinkingDocs},
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

lynxlink could not read or write one of the project files.

## Common causes:
- The Android project is owned by another user (e.g. created with sudo)
- An IDE or Gradle daemon holds a lock on the file (Windows)

## Things you can try:
- Check file and directory permissions of the ` + "`android`" + ` directory
- Close Android Studio and stop Gradle daemons:
~~~
$ ./gradlew --stop
~~~`,
		docLinks: []HttpLink{autolinkingDocs},
	}

	issues = map[Id]*Issue{
		androidDirNotFoundIssue.Id():    androidDirNotFoundIssue,
		moduleMetadataInvalidIssue.Id(): moduleMetadataInvalidIssue,
		applicationIdNotFoundIssue.Id(): applicationIdNotFoundIssue,
		invalidJavaPackageIssue.Id():    invalidJavaPackageIssue,
		buildScriptInvalidIssue.Id():    buildScriptInvalidIssue,
		manifestInvalidIssue.Id():       manifestInvalidIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
	}
)

// Values returns all issues ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
