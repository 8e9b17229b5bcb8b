package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps briandowns/spinner for indeterminate progress, mirroring
// the teacher's ui.Spinner.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner builds a spinner with the given message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr
	return &Spinner{s: s}
}

// Start begins the animation.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop ends the animation and clears the line.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}
