package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a list of validation errors
type ValidationErrors []ValidationError

// Error joins every validation error
func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks a configuration with defaults applied.
func Validate(config *Config) ValidationErrors {
	var errors ValidationErrors

	if config.TickRate <= 0 {
		errors = append(errors, ValidationError{
			Path:    "tickRate",
			Message: "must be greater than 0",
		})
	}

	if config.FrameRate < 0 {
		errors = append(errors, ValidationError{
			Path:    "frameRate",
			Message: "must not be negative",
		})
	}

	if config.Samples < 1 {
		errors = append(errors, ValidationError{
			Path:    "samples",
			Message: "must be at least 1",
		})
	}

	errors = append(errors, validateTracker("cpu", config.CPU, true)...)
	errors = append(errors, validateTracker("memory", config.Memory, true)...)
	errors = append(errors, validateTracker("fps", config.FPS, false)...)

	if d := config.Title.Decimals; d != nil && (*d < 0 || *d > 9) {
		errors = append(errors, ValidationError{
			Path:    "title.decimals",
			Message: "must be between 0 and 9",
		})
	}

	return errors
}

func validateTracker(name string, tc TrackerConfig, polled bool) ValidationErrors {
	var errors ValidationErrors

	if tc.Samples < 1 {
		errors = append(errors, ValidationError{
			Path:    name + ".samples",
			Message: "must be at least 1",
		})
	}

	if !polled {
		if tc.AutoStart {
			errors = append(errors, ValidationError{
				Path:    name + ".autoStart",
				Message: "is not supported, this tracker is driven by updates",
			})
		}
		return errors
	}

	// Intervals below the minimum are raised by the tracker itself.
	if tc.Interval < 0 {
		errors = append(errors, ValidationError{
			Path:    name + ".interval",
			Message: "must not be negative",
		})
	}

	return errors
}
