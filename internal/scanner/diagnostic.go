// SPDX-License-Identifier: MPL-2.0

package scanner

const (
	// SeverityWarning indicates a recoverable scan warning.
	SeverityWarning Severity = "warning"

	// CodeDependencyDirUnreadable is reported when a node_modules directory
	// exists but cannot be listed.
	CodeDependencyDirUnreadable = "dependency_dir_unreadable"
	// CodeScopeDirUnreadable is reported when an @scope directory cannot be listed.
	CodeScopeDirUnreadable = "scope_dir_unreadable"
	// CodePackageStatFailed is reported when a package entry cannot be
	// stat'ed, typically a dangling symlink left by a package manager.
	CodePackageStatFailed = "package_stat_failed"
	// CodeModuleNameDuplicate is reported when two packages declare the same
	// module name. The first one found is kept.
	CodeModuleNameDuplicate = "module_name_duplicate"
)

type (
	// Severity represents scan diagnostic severity.
	Severity string

	// Diagnostic is a structured, non-fatal scan finding returned to callers
	// (rather than written to stderr) so the CLI decides how to render it.
	Diagnostic struct {
		// Severity is the diagnostic level. Scans only report warnings;
		// anything worse aborts the scan with an error.
		Severity Severity
		// Code is a machine-readable identifier (e.g., "module_name_duplicate").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)
