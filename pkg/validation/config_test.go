package validation

import (
	"strings"
	"testing"
)

// TestConfigValidator_Valid verifies a clean config reports no errors
func TestConfigValidator_Valid(t *testing.T) {
	cv := NewConfigValidator("test")
	cv.Required("name", "value").
		Positive("freq", 1e6).
		MinInt("cycles", 4, 1).
		Fraction("slack", 0.2)

	if !cv.Valid() {
		t.Errorf("Expected valid config, got %v", cv.Err())
	}
	if cv.Err() != nil {
		t.Errorf("Expected nil error, got %v", cv.Err())
	}
}

// TestConfigValidator_CollectsAllErrors verifies every violation is reported
func TestConfigValidator_CollectsAllErrors(t *testing.T) {
	cv := NewConfigValidator("test")
	cv.Required("name", "").
		Positive("freq", -1).
		Fraction("slack", 1.5)

	err := cv.Err()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	for _, field := range []string{"test.name", "test.freq", "test.slack"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Expected error to mention %s, got: %v", field, err)
		}
	}
}

// TestConfigValidator_Fail records free-form violations
func TestConfigValidator_Fail(t *testing.T) {
	cv := NewConfigValidator("arch")
	cv.Fail("modes", "duplicate mode name")

	if cv.Valid() {
		t.Error("Expected invalid config after Fail")
	}
	if !strings.Contains(cv.Err().Error(), "duplicate mode name") {
		t.Errorf("Expected reason in error, got: %v", cv.Err())
	}
}
