// SPDX-License-Identifier: MPL-2.0

package lynxmod

import (
	"regexp"
	"strings"
)

var nonProjectNameChars = regexp.MustCompile(`[^a-z0-9]+`)

// ToProjectName derives a Gradle project name from an npm package identifier.
//
//	"@kafitra/lynx-device-info" -> "lynx-device-info"
//	"bare_name"                 -> "bare-name"
//
// The scope segment is dropped, the rest is lowercased, every run of
// characters outside [a-z0-9] becomes a single '-', and leading/trailing
// dashes are trimmed. ToProjectName never fails; the empty string and a
// scope without a package ("@scope") map to the empty string, so callers must
// not pass either.
func ToProjectName(packageName string) ProjectName {
	unscoped := packageName
	if strings.HasPrefix(packageName, "@") {
		// A bare "@scope" is all scope and leaves nothing behind.
		_, unscoped, _ = strings.Cut(packageName, "/")
	}

	name := nonProjectNameChars.ReplaceAllString(strings.ToLower(unscoped), "-")
	return ProjectName(strings.Trim(name, "-"))
}
