package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"lyn/internal/config"
)

// CreateTempProject creates a temporary project directory with a lyn.toml.
func CreateTempProject(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tempDir, config.CONFIG_FILE), []byte("name = \"demo\"\n"), 0644); err != nil {
		t.Fatalf("Failed to create %s file: %v", config.CONFIG_FILE, err)
	}

	return tempDir
}

// CreateModuleFile writes dir/name.lyn and returns its path.
func CreateModuleFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	return CreateTestFileInDir(t, dir, name+".lyn", content)
}

// CreateTestFileInDir creates a test file in a specific directory
func CreateTestFileInDir(t *testing.T, dir, filename, content string) string {
	t.Helper()
	// Ensure the target directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return filePath
}
