// Package ui provides the terminal UI helpers for extractctl, adapted
// from the teacher's orchestrator UI package (libs/knowledge-engine/
// cmd/orchestrator/ui).
package ui

import (
	"github.com/fatih/color"
)

var verboseFlag bool

// Init applies color/verbosity settings for the process.
func Init(noColor, verbose bool) {
	verboseFlag = verbose
	if noColor {
		color.NoColor = true
	}
}

// Verbose reports whether --verbose was set.
func Verbose() bool {
	return verboseFlag
}
