// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for lynxlink.
//
// Commands load configuration through App.Config, merge it with their flags
// and call into internal/linker and internal/scanner. Failures are rendered
// here, with the matching issue guide in verbose mode, and reported to
// Execute as an *ExitError so the process exits with the right code.
package cmd
