package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigValidator provides a fluent interface for validating
// configuration values. It collects all violations rather than
// failing on the first one, so a bad config reports every problem
// in a single run.
type ConfigValidator struct {
	errors []error
	name   string // config document name for error messages
}

// NewConfigValidator creates a new config validator with the given
// document name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

// Required validates that a string field is not empty.
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: required field is empty", cv.name, field))
	}
	return cv
}

// Positive validates that a numeric field is strictly positive.
func (cv *ConfigValidator) Positive(field string, value float64) *ConfigValidator {
	if value <= 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g must be positive", cv.name, field, value))
	}
	return cv
}

// MinInt validates that an int field is at least the minimum value.
func (cv *ConfigValidator) MinInt(field string, value, min int) *ConfigValidator {
	if value < min {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d is below minimum %d", cv.name, field, value, min))
	}
	return cv
}

// Fraction validates that a value lies in [0, 1].
func (cv *ConfigValidator) Fraction(field string, value float64) *ConfigValidator {
	if value < 0 || value > 1 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g is not a fraction in [0, 1]", cv.name, field, value))
	}
	return cv
}

// Fail records a violation the other checks cannot express.
func (cv *ConfigValidator) Fail(field, reason string) *ConfigValidator {
	cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %s", cv.name, field, reason))
	return cv
}

// Valid reports whether no violations were recorded.
func (cv *ConfigValidator) Valid() bool {
	return len(cv.errors) == 0
}

// Err returns nil when valid, otherwise one error joining every
// recorded violation.
func (cv *ConfigValidator) Err() error {
	if len(cv.errors) == 0 {
		return nil
	}
	msgs := make([]string, len(cv.errors))
	for i, e := range cv.errors {
		msgs[i] = e.Error()
	}
	return errors.New(strings.Join(msgs, "; "))
}
