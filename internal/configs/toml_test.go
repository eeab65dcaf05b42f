package configs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.toml")

	type TestStruct struct {
		Name  string
		Count int
		Tags  []string
	}

	originalData := TestStruct{
		Name:  "backup",
		Count: 3,
		Tags:  []string{"a", "b"},
	}

	if err := SaveTOML(testFile, originalData); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loadedData := TestStruct{}
	if _, err := LoadTOML(testFile, &loadedData); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loadedData.Name != originalData.Name {
		t.Errorf("Expected Name %q, got %q", originalData.Name, loadedData.Name)
	}
	if loadedData.Count != originalData.Count {
		t.Errorf("Expected Count %d, got %d", originalData.Count, loadedData.Count)
	}
	if len(loadedData.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %v", loadedData.Tags)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nonexistent.toml")

	var data struct{ Name string }
	if _, err := LoadTOML(testFile, &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "subdir", "test.toml")

	if err := SaveTOML(testFile, struct{ Name string }{Name: "Test"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("File was not created: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestSaveTOMLReplacesAndCleansUp(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.toml")

	for _, name := range []string{"first", "second"} {
		if err := SaveTOML(testFile, struct{ Name string }{Name: name}); err != nil {
			t.Fatalf("SaveTOML failed: %v", err)
		}
	}

	var data struct{ Name string }
	if _, err := LoadTOML(testFile, &data); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if data.Name != "second" {
		t.Errorf("Expected the second save to win, got %q", data.Name)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the config file, found %d entries", len(entries))
	}
}
