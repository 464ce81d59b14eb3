// Package testutil provides project fixtures and golden-file helpers for tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FixtureContext holds information about a loaded fixture.
type FixtureContext struct {
	// Name is the fixture directory name under testdata/fixtures
	Name string

	// Root is the absolute path to the fixture project
	Root string

	// ExpectedDir is the path to the expected/ directory
	ExpectedDir string
}

// LoadFixture loads a fixture project, failing the test on error.
func LoadFixture(t *testing.T, name string) *FixtureContext {
	t.Helper()

	fixtureDir := filepath.Join(getFixturesRoot(t), name)
	if _, err := os.Stat(fixtureDir); os.IsNotExist(err) {
		t.Fatalf("Fixture directory not found: %s", fixtureDir)
	}

	expectedDir := filepath.Join(fixtureDir, "expected")
	if err := os.MkdirAll(expectedDir, 0o755); err != nil {
		t.Fatalf("Failed to create expected directory: %v", err)
	}

	return &FixtureContext{
		Name:        name,
		Root:        fixtureDir,
		ExpectedDir: expectedDir,
	}
}

// ExpectedPath returns the path to a golden file within the fixture.
func (f *FixtureContext) ExpectedPath(name string) string {
	return filepath.Join(f.ExpectedDir, name+".golden")
}

// WriteProject creates a temporary project holding files, keyed by
// slash-separated relative path, and returns its root.
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, text := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(text), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", full, err)
		}
	}
	return root
}

// getFixturesRoot returns the absolute path to testdata/fixtures/.
func getFixturesRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get caller information")
	}

	// internal/testutil -> project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	fixturesRoot := filepath.Join(projectRoot, "testdata", "fixtures")

	if _, err := os.Stat(fixturesRoot); os.IsNotExist(err) {
		t.Fatalf("Fixtures root not found: %s", fixturesRoot)
	}
	return fixturesRoot
}
