// Package jsonpath selects values from JSON documents with a small subset
// of JSONPath: "$", dotted keys and [n] or ['key'] subscripts.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract extracts a value from a JSON string using a JSONPath expression
func Extract(json string, path string) (string, error) {
	if json == "" {
		return "", fmt.Errorf("empty JSON string")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	result := gjson.Get(json, toGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}

	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// ExtractAll extracts every path in order and fails on the first missing one.
func ExtractAll(json string, paths []string) ([]string, error) {
	values := make([]string, 0, len(paths))
	for _, path := range paths {
		value, err := Extract(json, path)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// toGjsonPath converts $.snapshot['cpu'].percent to snapshot.cpu.percent
func toGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	replacer := strings.NewReplacer(
		"['", ".", "']", "",
		`["`, ".", `"]`, "",
		"[", ".", "]", "",
	)
	return strings.TrimPrefix(replacer.Replace(path), ".")
}
