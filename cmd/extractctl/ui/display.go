package ui

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

// Table prints a tabwriter-aligned table, mirroring the teacher's
// ui.Table.
func Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(w, strings.Join(separator, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

// Section prints a section header.
func Section(title string) {
	fmt.Fprintf(os.Stdout, "\n%s\n%s\n\n", title, strings.Repeat("=", len(title)))
}

// Success prints a green success line.
func Success(format string, args ...interface{}) {
	fmt.Fprintln(os.Stdout, color.GreenString("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints a red error line to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a yellow warning line.
func Warning(format string, args ...interface{}) {
	fmt.Fprintln(os.Stdout, color.YellowString("⚠ "+fmt.Sprintf(format, args...)))
}

// Info prints an informational line.
func Info(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "ℹ %s\n", fmt.Sprintf(format, args...))
}

// Newline prints a blank line.
func Newline() {
	fmt.Fprintln(os.Stdout)
}

// ConfidenceString colors a confidence score red/yellow/green by band.
func ConfidenceString(confidence int) string {
	text := fmt.Sprintf("%d", confidence)
	switch {
	case confidence < 55:
		return color.RedString(text)
	case confidence < 82:
		return color.YellowString(text)
	default:
		return color.GreenString(text)
	}
}

// FormatDuration renders a duration the way the teacher's orchestrator
// summary does.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Millisecond)
	if d >= time.Second {
		return d.Round(10 * time.Millisecond).String()
	}
	return d.String()
}
