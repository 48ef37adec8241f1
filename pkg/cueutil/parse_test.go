// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#TestConfig: {
	name:         string
	count:        int
	enabled:      bool
	description?: string
}
`

type TestConfig struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid CUE parses successfully", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
name: "test"
count: 42
enabled: true
`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}
		if result.Value.Name != "test" || result.Value.Count != 42 || !result.Value.Enabled {
			t.Errorf("unexpected decoded value: %+v", result.Value)
		}
	})

	t.Run("type mismatch reports filename and path", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
name: "test"
count: "many"
enabled: true
`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig", WithFilename("cfg.cue"))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "cfg.cue") || !strings.Contains(err.Error(), "count") {
			t.Errorf("error should name file and field, got: %v", err)
		}
	})

	t.Run("missing schema definition is an internal error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), []byte(`name: "x"`), "#Missing")
		if err == nil || !strings.Contains(err.Error(), "internal error") {
			t.Errorf("expected internal error, got %v", err)
		}
	})

	t.Run("oversized input is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), []byte(`name: "x"`), "#TestConfig", WithMaxFileSize(2))
		if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
			t.Errorf("expected size error, got %v", err)
		}
	})
}

func TestParseJSONAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid JSON parses successfully", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"name": "test", "count": 1, "enabled": false, "description": "d"}`)
		result, err := ParseJSONAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseJSONAndDecode failed: %v", err)
		}
		if result.Value.Description != "d" {
			t.Errorf("expected description 'd', got %q", result.Value.Description)
		}
	})

	t.Run("CUE syntax that is not JSON is rejected", func(t *testing.T) {
		t.Parallel()

		data := []byte(`name: "test", count: 1, enabled: false`)
		_, err := ParseJSONAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig", WithFilename("m.json"))
		if !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("expected ErrInvalidJSON, got %v", err)
		}
		if !strings.Contains(err.Error(), "m.json") {
			t.Errorf("error should name the file, got: %v", err)
		}
	})

	t.Run("truncated JSON is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseJSONAndDecode[TestConfig]([]byte(testSchema), []byte(`{"name": `), "#TestConfig")
		if !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("expected ErrInvalidJSON, got %v", err)
		}
	})

	t.Run("schema violation is reported", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"name": 3, "count": 1, "enabled": false}`)
		_, err := ParseJSONAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err == nil || errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("expected schema error, got %v", err)
		}
	})
}
