package config

import (
	_ "embed"

	"github.com/wesleyorama2/pulse/pkg/jsonschema"
)

//go:embed schemas/config.schema.json
var configSchemaJSON string

var configSchema = jsonschema.MustCompile("config.schema.json", configSchemaJSON)

// ValidateSchema checks a decoded document against the configuration schema.
func ValidateSchema(doc interface{}) error {
	if errs := configSchema.Validate(doc); len(errs) > 0 {
		return errs
	}
	return nil
}
