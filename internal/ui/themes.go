package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for text output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates positive outcomes.
	Success string
	// Warning is used for caution messages.
	Warning string
	// Error indicates failures.
	Error string
	// Info is used for informational values.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TablePalette holds lipgloss colors for rendered tables.
type TablePalette struct {
	Header lipgloss.TerminalColor
	Index  lipgloss.TerminalColor
	Value  lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
	Accent lipgloss.TerminalColor
}

var (
	// DarkTablePalette matches DarkTheme.
	DarkTablePalette = TablePalette{
		Header: lipgloss.Color("#FF8C00"),
		Index:  lipgloss.Color("#4488FF"),
		Value:  lipgloss.Color("#E0E0E0"),
		Dim:    lipgloss.Color("#666666"),
		Accent: lipgloss.Color("#9ece6a"),
	}

	// NoColorTablePalette renders with the terminal's default colors.
	NoColorTablePalette = TablePalette{
		Header: lipgloss.NoColor{},
		Index:  lipgloss.NoColor{},
		Value:  lipgloss.NoColor{},
		Dim:    lipgloss.NoColor{},
		Accent: lipgloss.NoColor{},
	}
)

// GetCurrentTheme returns the currently active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// GetCurrentTablePalette returns the palette matching the active theme.
func GetCurrentTablePalette() TablePalette {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTablePalette
	}
	return DarkTablePalette
}

// InitTheme selects the theme from the noColor flag and the NO_COLOR
// environment variable (https://no-color.org/). Any value of NO_COLOR,
// including the empty string, disables colors.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
