// SPDX-License-Identifier: MPL-2.0

// Package lynxmod defines the lynx.module.json metadata format carried by Lynx
// native extension packages, and the rules for validating it.
//
// A metadata file is parsed in three stages:
//
//  1. Strict JSON extraction (a syntax error names the file)
//  2. Structural validation against the embedded CUE schema (#LynxModule)
//  3. Semantic validation in Go (Validate): cross-field rules that CUE cannot
//     express cleanly, plus normalization (trimming, dropping empty optionals)
//
// The package also owns the derivation of Gradle project names from npm package
// identifiers (ToProjectName).
package lynxmod
