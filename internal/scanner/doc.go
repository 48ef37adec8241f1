// SPDX-License-Identifier: MPL-2.0

// Package scanner finds Lynx native extension packages installed as npm
// dependencies.
//
// Starting at the project root, the scanner walks up to the filesystem root and
// collects every node_modules directory on the way. Directories are processed
// nearest first, so a package installed close to the project shadows a hoisted
// copy of the same package further up. A package is an extension when it
// carries lynx.module.json at its root; the file is parsed and validated with
// package lynxmod, and any error in it aborts the scan.
//
// File organization:
//   - scanner.go: Scan entry points and the traversal
//   - diagnostic.go: non-fatal diagnostics returned alongside results
//   - options.go: functional options
package scanner
