package output

import (
	"github.com/fatih/color"
)

const (
	cpuWarnPercent = 50.0
	cpuBadPercent  = 80.0
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Name      *color.Color
	Label     *color.Color
	Separator *color.Color
	Good      *color.Color
	Warn      *color.Color
	Bad       *color.Color
	Value     *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Name:      color.New(color.FgMagenta, color.Bold),
		Label:     color.New(color.FgBlue),
		Separator: color.New(color.FgHiBlack),
		Good:      color.New(color.FgGreen, color.Bold),
		Warn:      color.New(color.FgYellow, color.Bold),
		Bad:       color.New(color.FgRed, color.Bold),
		Value:     color.New(color.FgWhite),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	// Disable all colors
	scheme.Name.DisableColor()
	scheme.Label.DisableColor()
	scheme.Separator.DisableColor()
	scheme.Good.DisableColor()
	scheme.Warn.DisableColor()
	scheme.Bad.DisableColor()
	scheme.Value.DisableColor()

	return scheme
}

// CPUColor picks a color for a CPU percentage
func (s *ColorScheme) CPUColor(percent float64) *color.Color {
	switch {
	case percent >= cpuBadPercent:
		return s.Bad
	case percent >= cpuWarnPercent:
		return s.Warn
	default:
		return s.Good
	}
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}
