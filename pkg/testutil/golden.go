// Package testutil compares test output against checked-in golden
// files. Run the tests with -update to regenerate the files from the
// current output.
package testutil

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

var update = flag.Bool("update", false, "rewrite golden files with current output")

// CompareGolden compares actual against the contents of the golden
// file at goldenPath.
func CompareGolden(t *testing.T, goldenPath string, actual string) {
	t.Helper()

	if *update {
		writeGolden(t, goldenPath, []byte(actual))
		return
	}

	content, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("Failed to read golden file %s: %v", goldenPath, err)
	}
	if expected := string(content); actual != expected {
		t.Errorf("Golden file mismatch for %s\nExpected:\n%s\nActual:\n%s", goldenPath, expected, actual)
	}
}

// CompareGoldenBytes is CompareGolden for byte slices.
func CompareGoldenBytes(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()
	CompareGolden(t, goldenPath, string(actual))
}

// CompareGoldenSlice compares a string slice against a golden file
// holding a JSON array of strings.
func CompareGoldenSlice(t *testing.T, goldenPath string, actual []string) {
	t.Helper()

	if *update {
		encoded, err := json.Marshal(actual)
		if err != nil {
			t.Fatalf("Failed to encode golden slice: %v", err)
		}
		writeGolden(t, goldenPath, encoded)
		return
	}

	content, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("Failed to read golden file %s: %v", goldenPath, err)
	}
	var expected []string
	if err := json.Unmarshal(content, &expected); err != nil {
		t.Fatalf("Failed to parse JSON from golden file %s: %v", goldenPath, err)
	}
	if !slices.Equal(actual, expected) {
		t.Errorf("Golden file mismatch for %s\nExpected: %v\nActual: %v", goldenPath, expected, actual)
	}
}

func writeGolden(t *testing.T, goldenPath string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		t.Fatalf("Failed to create golden file directory for %s: %v", goldenPath, err)
	}
	if err := os.WriteFile(goldenPath, data, 0o644); err != nil {
		t.Fatalf("Failed to update golden file %s: %v", goldenPath, err)
	}
	t.Logf("Updated golden file: %s", goldenPath)
}
