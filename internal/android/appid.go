// SPDX-License-Identifier: MPL-2.0

package android

import (
	"os"
	"regexp"
	"strings"
)

var applicationIDPattern = regexp.MustCompile(`applicationId\s*=?\s*["']([^"']+)["']`)

// ReadApplicationID extracts the applicationId assignment from a Gradle
// build file. Both `applicationId "x"` and `applicationId = 'x'` are
// recognized. It reports false, not an error, when the file is unreadable or
// has no such assignment, so callers can fall back to an explicit package.
func ReadApplicationID(buildFile string) (string, bool) {
	content, err := os.ReadFile(buildFile)
	if err != nil {
		return "", false
	}

	m := applicationIDPattern.FindStringSubmatch(string(content))
	if m == nil {
		return "", false
	}
	id := strings.TrimSpace(m[1])
	return id, id != ""
}
