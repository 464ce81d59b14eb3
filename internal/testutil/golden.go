package testutil

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// updateGolden controls whether golden files should be updated.
// Use: go test ./... -run TestGolden -update
var updateGolden = flag.Bool("update", false, "update golden files")

// ShouldUpdate returns true if golden files should be updated.
func ShouldUpdate() bool {
	return *updateGolden
}

// CompareGolden compares got against the golden file, failing with a diff on
// mismatch. With -update the golden file is rewritten instead.
func CompareGolden(t *testing.T, fixture *FixtureContext, name string, got []byte) {
	t.Helper()

	goldenPath := fixture.ExpectedPath(name)
	if *updateGolden {
		UpdateGolden(t, fixture, name, got)
		t.Logf("Updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create:\n  go test ./... -run %s -update",
				goldenPath, got, t.Name())
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(got, expected) {
		t.Fatalf("Golden mismatch for %s:\n%s\n\nRun with -update to refresh:\n  go test ./... -run %s -update",
			name, unifiedDiff(string(expected), string(got), goldenPath), t.Name())
	}
}

// CompareGoldenJSON marshals got as indented JSON and compares it.
func CompareGoldenJSON(t *testing.T, fixture *FixtureContext, name string, got any) {
	t.Helper()

	data, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal %s: %v", name, err)
	}
	CompareGolden(t, fixture, name, append(data, '\n'))
}

// UpdateGolden writes data to the golden file.
func UpdateGolden(t *testing.T, fixture *FixtureContext, name string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(fixture.ExpectedDir, 0o755); err != nil {
		t.Fatalf("Failed to create expected directory: %v", err)
	}
	if err := os.WriteFile(fixture.ExpectedPath(name), data, 0o644); err != nil {
		t.Fatalf("Failed to write golden file: %v", err)
	}
}

func unifiedDiff(expected, got, path string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(got),
		FromFile: path + " (expected)",
		ToFile:   path + " (got)",
		Context:  3,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// NormalizeRoot replaces the project root in s with <root> and uses forward
// slashes, so output mentioning temp directories can be compared.
func NormalizeRoot(s, root string) string {
	s = strings.ReplaceAll(s, root, "<root>")
	return strings.ReplaceAll(s, "\\", "/")
}
