package output

import (
	"fmt"
	"strings"
)

// TextFormatter renders reports as a window-title style line
type TextFormatter struct {
	Decimals int
	NoColor  bool
}

// NewTextFormatter creates a new text formatter with the given options
func NewTextFormatter(decimals int, noColor bool) *TextFormatter {
	return &TextFormatter{
		Decimals: decimals,
		NoColor:  noColor,
	}
}

// FormatTitle renders "<name> | <framework> | FPS: x | TPS: y | CPU: z% | Memory: w MB".
// Disabled trackers report 0.
func FormatTitle(r *Report, decimals int) string {
	return NewTextFormatter(decimals, true).FormatReport(r)
}

// FormatReport implements FormatProvider.
func (f *TextFormatter) FormatReport(r *Report) string {
	scheme := DefaultColorScheme()
	if f.NoColor {
		scheme = NoColorScheme()
	}

	num := func(v float64) string {
		return fmt.Sprintf("%.*f", f.decimals(), v)
	}
	field := func(label string, value string) string {
		return scheme.Label.Sprint(label+":") + " " + value
	}

	cpu := r.CPUPercent()
	parts := []string{
		scheme.Name.Sprint(r.Name),
		scheme.Value.Sprint(r.Framework),
		field("FPS", scheme.Value.Sprint(num(r.FPS))),
		field("TPS", scheme.Value.Sprint(num(r.TPS))),
		field("CPU", scheme.CPUColor(cpu).Sprint(num(cpu))+"%"),
		field("Memory", scheme.Value.Sprint(num(r.MemoryMB()))+" MB"),
	}

	return strings.Join(parts, scheme.Separator.Sprint(" | "))
}

func (f *TextFormatter) decimals() int {
	if f.Decimals < 0 {
		return 0
	}
	return f.Decimals
}
