// Package output provides terminal output formatting utilities for the
// relbump CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintWarning prints a yellow warning line. Used for degraded but
// non-fatal conditions such as a missing remote URL.
func PrintWarning(out io.Writer, format string, args ...any) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("Warning:"), fmt.Sprintf(format, args...))
}

// PrintSuccess prints a green checkmark followed by the message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintBump prints the version transition with the bump level name.
func PrintBump(out io.Writer, current, next, level string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(out, "Bumping %s -> %s (%s)\n", cyan(current), cyan(next), level)
}

// PrintSectionPreview prints a width-aware separator around a rendered
// changelog section so preview output stands apart from status lines.
func PrintSectionPreview(out io.Writer, section string) {
	dim := color.New(color.Faint).SprintFunc()
	line := strings.Repeat("─", minInt(GetTerminalWidth(), 80))
	fmt.Fprintf(out, "%s\n%s%s\n", dim(line), section, dim(line))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
