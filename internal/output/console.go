package output

import (
	"fmt"
	"io"
	"sync"
)

const clearLine = "\r\033[K"

// Console writes reports to a terminal or a pipe.
// On a terminal, text reports redraw a single line in place.
type Console struct {
	mu       sync.Mutex
	writer   io.Writer
	provider FormatProvider
	inPlace  bool
	dirty    bool
}

// ConsoleConfig contains configuration for Console.
type ConsoleConfig struct {
	Writer   io.Writer
	Format   OutputFormat
	Decimals int
	NoColor  bool
	ForceTTY bool

	// Select replaces the format with the listed JSONPath values
	Select []string
}

// NewConsole creates a console for the given writer.
func NewConsole(config ConsoleConfig) *Console {
	isTTY := config.ForceTTY || IsTerminal(config.Writer)
	noColor := config.NoColor || !isTTY || !SupportsColors()

	provider := GetFormatter(config.Format, config.Decimals, noColor)
	if len(config.Select) > 0 {
		provider = &FieldsFormatter{Paths: config.Select}
	}

	return &Console{
		writer:   config.Writer,
		provider: provider,
		inPlace:  isTTY && config.Format != FormatJSON && config.Format != FormatYAML,
	}
}

// Print writes one report.
func (c *Console) Print(r *Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := c.provider.FormatReport(r)
	if c.inPlace {
		fmt.Fprint(c.writer, clearLine+line)
		c.dirty = true
		return
	}
	fmt.Fprintln(c.writer, line)
}

// Finish terminates a line left open by in-place redraws.
func (c *Console) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dirty {
		fmt.Fprintln(c.writer)
		c.dirty = false
	}
}
