// SPDX-License-Identifier: MPL-2.0

// Package android reconciles discovered Lynx modules into a host Android
// project.
//
// Each writer owns one artifact and fully reads, transforms and writes it
// before returning:
//   - settings.go: project inclusion in settings.gradle
//   - buildscript.go: dependency declarations in app/build.gradle
//   - manifest.go: <uses-permission> entries in AndroidManifest.xml
//   - registry.go: the generated LynxAutolinkRegistry.java
//
// The Gradle and XML files are hand-edited by users, so writers never parse
// them. They only touch a marker-delimited region (see package managedblock)
// and locate it with plain text anchors. Files are rewritten only when their
// content changes.
package android
