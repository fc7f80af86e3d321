package ui

// ColorPrimary returns the escape code of the active theme's primary color.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the escape code for muted text.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorSuccess returns the escape code for positive outcomes.
func ColorSuccess() string { return GetCurrentTheme().Success }

// ColorWarning returns the escape code for warnings.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the escape code for failures.
func ColorError() string { return GetCurrentTheme().Error }

// ColorInfo returns the escape code for informational values.
func ColorInfo() string { return GetCurrentTheme().Info }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the escape code for underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the escape code clearing all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }
