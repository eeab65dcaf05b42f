package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/PolarWolf314/endec/internal/configs"
)

// withDataPath points the audit log at a temporary directory.
func withDataPath(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "endec")
	original := configs.UserSettings.DataPath
	configs.UserSettings.DataPath = dir
	t.Cleanup(func() { configs.UserSettings.DataPath = original })
	return dir
}

func readLines(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(LogPath())
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestLog_CreatesFile(t *testing.T) {
	dir := withDataPath(t)

	if err := Log(NewEntry("encrypt")); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("Audit log file was not created: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	withDataPath(t)

	for _, op := range []string{"encrypt", "decrypt", "shred"} {
		if err := Log(NewEntry(op)); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	if lines := readLines(t); len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_ValidJSON(t *testing.T) {
	withDataPath(t)

	entry := NewEntry("encrypt")
	entry.Files = []string{"a.txt.enc", "b.txt.enc"}
	entry.Version = "1.1.0"
	if err := Log(entry); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(readLines(t)[0]), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if parsed.ID != entry.ID || len(parsed.ID) != 36 {
		t.Errorf("Expected id %s, got %s", entry.ID, parsed.ID)
	}
	if parsed.User != configs.UserSettings.Username {
		t.Errorf("Expected user %s, got %s", configs.UserSettings.Username, parsed.User)
	}
	if parsed.Operation != "encrypt" || parsed.Version != "1.1.0" {
		t.Errorf("Unexpected entry %+v", parsed)
	}
	if len(parsed.Files) != 2 {
		t.Errorf("Expected 2 files, got %d", len(parsed.Files))
	}
}

func TestLog_TimestampFormat(t *testing.T) {
	withDataPath(t)

	if err := Log(Entry{Operation: "encrypt"}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(readLines(t)[0]), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if parsed.ID == "" {
		t.Error("ID should be auto-set")
	}
	if !strings.HasSuffix(parsed.Timestamp, "Z") || !strings.Contains(parsed.Timestamp, ".") {
		t.Errorf("Timestamp should be UTC with microseconds, got %s", parsed.Timestamp)
	}
	if _, err := ParseTimestamp(parsed.Timestamp); err != nil {
		t.Errorf("Timestamp should parse: %v", err)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	withDataPath(t)

	if err := Log(Entry{Operation: "shred"}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	line := readLines(t)[0]
	for _, field := range []string{`"files"`, `"version"`, `"failures"`} {
		if strings.Contains(line, field) {
			t.Errorf("Empty %s field should be omitted", field)
		}
	}
}

func TestLog_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	original := configs.UserSettings.DataPath
	configs.UserSettings.DataPath = filepath.Join(blocker, "endec")
	defer func() { configs.UserSettings.DataPath = original }()

	if err := Log(NewEntry("encrypt")); err == nil {
		t.Error("Expected an error when the data directory cannot be created")
	}
}

func TestReadEntries(t *testing.T) {
	withDataPath(t)

	entries, err := ReadEntries()
	if err != nil || entries != nil {
		t.Fatalf("Expected no entries without a log, got %v, %v", entries, err)
	}

	for _, op := range []string{"encrypt", "decrypt"} {
		if err := Log(NewEntry(op)); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}
	entries, err = ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Operation != "encrypt" || entries[1].Operation != "decrypt" {
		t.Errorf("Unexpected entries: %+v", entries)
	}
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","user":"alice","op":"encrypt"}
{"ts":"2024-01-15T10:35:00.456789Z","user":"bob","op":"decrypt"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].User != "alice" || entries[1].User != "bob" {
		t.Errorf("Unexpected users %s, %s", entries[0].User, entries[1].User)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","user":"alice","op":"encrypt"}
this is not valid json
{"ts":"2024-01-15T10:35:00.456789Z","user":"bob","op":"decrypt"}`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 valid entries (malformed should be skipped), got %d", len(entries))
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries([]byte{})
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if entries != nil {
		t.Errorf("Expected nil entries for empty data, got %v", entries)
	}
}

func TestParseTimestamp(t *testing.T) {
	for _, ts := range []string{"2024-01-15T10:30:00.123456Z", "2024-01-15T10:30:00+02:00"} {
		if _, err := ParseTimestamp(ts); err != nil {
			t.Errorf("ParseTimestamp(%q) failed: %v", ts, err)
		}
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("Expected an error for an invalid timestamp")
	}
}

func TestLogPath(t *testing.T) {
	dir := withDataPath(t)
	if got := LogPath(); got != filepath.Join(dir, "audit.jsonl") {
		t.Errorf("Unexpected log path %s", got)
	}
}
