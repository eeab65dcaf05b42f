package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/endec/internal/configs"

	"github.com/google/uuid"
)

// TimestampFormat is RFC3339 with microseconds, in UTC.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// FileName is the name of the audit log inside the data directory.
const FileName = "audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // System user performing the action.
	Host      string `json:"host"`
	Operation string `json:"op"` // encrypt, decrypt or shred.

	Files    []string `json:"files,omitempty"`
	Version  string   `json:"version,omitempty"`  // Format version written, for encrypt.
	Failures int      `json:"failures,omitempty"` // Files that failed or did not match.
}

// NewEntry returns an entry for op with identity fields filled in.
func NewEntry(op string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		User:      configs.UserSettings.Username,
		Host:      configs.UserSettings.Hostname,
		Operation: op,
	}
}

// Log appends an entry to the audit log. Callers should report a failure
// but never fail the operation because of it.
func Log(entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	_, err = f.Write(append(data, '\n'))
	return err
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return filepath.Join(configs.UserSettings.DataPath, FileName)
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// ParseTimestamp parses an entry timestamp.
func ParseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}
