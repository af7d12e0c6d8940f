package cli

import (
	"encoding/json"
	"testing"
)

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}

// JSONData returns the "data" object of a successful JSON envelope
func JSONData(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	result := ParseJSON(t, output)
	if success, _ := result["success"].(bool); !success {
		t.Fatalf("Expected success envelope, got: %s", output)
	}
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected object data, got: %s", output)
	}
	return data
}
