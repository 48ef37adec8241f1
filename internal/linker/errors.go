// SPDX-License-Identifier: MPL-2.0

package linker

import (
	"fmt"
	"strings"
)

// StepError reports the step that stopped a linking pass. Completed names
// the steps that finished before it; their files keep the changes.
type StepError struct {
	Step      string
	Path      string
	Completed []string
	Err       error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
	if len(e.Completed) > 0 {
		msg += fmt.Sprintf(" (already updated: %s)", strings.Join(e.Completed, ", "))
	}
	return msg
}

// Unwrap returns the underlying step error.
func (e *StepError) Unwrap() error { return e.Err }
