// Package ui provides theme and color support for the command-line output.
// It holds the ANSI color scheme used by plain text output and the lipgloss
// palette used by rendered tables, both switched off by NO_COLOR or -no-color.
package ui
