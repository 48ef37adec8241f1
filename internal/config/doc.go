// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is looked up in this order, first match wins:
//  1. the file given with --config
//  2. lynxlink.cue in the project root
//  3. config.cue in the user config directory (~/.config/lynxlink on Linux,
//     ~/Library/Application Support/lynxlink on macOS, %AppData%\lynxlink on Windows)
//
// Every key can also be set from the environment with the LYNXLINK_ prefix
// (LYNXLINK_JAVA_PACKAGE, LYNXLINK_UI_VERBOSE). Files are validated against
// the CUE schema in config_schema.cue before they are merged.
package config
