// SPDX-License-Identifier: MPL-2.0

// Package linker runs the complete autolinking pass for one host project:
// scan the installed packages, then reconcile the registry source,
// settings.gradle, app/build.gradle and AndroidManifest.xml, in that order.
//
// A pass is sequential and blocking. The scan finishes before any file is
// written, and each step fully reads, transforms and writes its file before
// the next one starts. The context is only consulted between steps.
//
// There is no file locking. Running two passes against the same project at
// the same time is unsupported: both may read a file before either writes
// it, and the last writer wins. Because every step is idempotent, re-running
// a pass after such a race restores a consistent state.
//
// A failed step stops the pass. Files written by earlier steps are kept;
// the returned *StepError lists them.
package linker
