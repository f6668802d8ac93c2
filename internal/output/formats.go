package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/pulse/pkg/jsonpath"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable title line
	FormatText OutputFormat = "text"
	// FormatJSON outputs one JSON object per report
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs one YAML document per report
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json or yaml)", s)
	}
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatReport(r *Report) string
}

// JSONFormatter formats reports as single-line JSON
type JSONFormatter struct{}

// FormatReport implements FormatProvider.
func (f *JSONFormatter) FormatReport(r *Report) string {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// YAMLFormatter formats reports as YAML documents
type YAMLFormatter struct{}

// FormatReport implements FormatProvider.
func (f *YAMLFormatter) FormatReport(r *Report) string {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Sprintf("error: %q\n", err.Error())
	}
	return "---\n" + strings.TrimRight(string(data), "\n")
}

// FieldsFormatter prints selected JSONPath values of each report
type FieldsFormatter struct {
	Paths []string
}

// FormatReport implements FormatProvider.
func (f *FieldsFormatter) FormatReport(r *Report) string {
	data, err := json.Marshal(r)
	if err != nil {
		return "error=" + err.Error()
	}

	parts := make([]string, len(f.Paths))
	for i, path := range f.Paths {
		value, err := jsonpath.Extract(string(data), path)
		if err != nil {
			value = "-"
		}
		parts[i] = path + "=" + value
	}
	return strings.Join(parts, " ")
}

// GetFormatter returns a formatter for the specified output format
func GetFormatter(format OutputFormat, decimals int, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return NewTextFormatter(decimals, noColor)
	}
}
