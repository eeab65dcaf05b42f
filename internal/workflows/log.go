package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/endec/internal/audit"
	kerrors "github.com/PolarWolf314/endec/internal/errors"
)

// dateFormat is the format of the --since and --until filters.
const dateFormat = "2006-01-02"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// User filters entries by system user.
	User string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log. A missing log yields no entries.
//
// Returns ErrInvalidDateFormat if a date filter is not YYYY-MM-DD.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	var since, until time.Time
	if opts.Since != "" {
		t, err := time.Parse(dateFormat, opts.Since)
		if err != nil {
			return nil, kerrors.New(kerrors.ErrInvalidDateFormat, "--since date format invalid, use YYYY-MM-DD")
		}
		since = t
	}
	if opts.Until != "" {
		t, err := time.Parse(dateFormat, opts.Until)
		if err != nil {
			return nil, kerrors.New(kerrors.ErrInvalidDateFormat, "--until date format invalid, use YYYY-MM-DD")
		}
		// Include the entire day.
		until = t.Add(24*time.Hour - time.Nanosecond)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrIO, err, "could not read audit log").WithPaths(audit.LogPath())
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries
	if opts.User != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return strings.EqualFold(e.User, opts.User)
		})
	}

	if opts.Operations != "" {
		ops := make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return ops[strings.ToLower(e.Operation)]
		})
	}

	if !since.IsZero() || !until.IsZero() {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, err := audit.ParseTimestamp(e.Timestamp)
			if err != nil {
				return false
			}
			return (since.IsZero() || !t.Before(since)) && (until.IsZero() || !t.After(until))
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, err := audit.ParseTimestamp(ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format(dateFormat)
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := audit.ParseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry in verbose format.
func FormatDetails(e audit.Entry) string {
	var parts []string
	switch {
	case len(e.Files) > 3:
		parts = append(parts, fmt.Sprintf("%d files", len(e.Files)))
	case len(e.Files) > 0:
		parts = append(parts, strings.Join(e.Files, ", "))
	}
	if e.Version != "" {
		parts = append(parts, "v"+e.Version)
	}
	if e.Failures > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", e.Failures))
	}
	return strings.Join(parts, ", ")
}

// FormatDetailsOneline formats the details for a log entry in oneline format.
func FormatDetailsOneline(e audit.Entry) string {
	details := fmt.Sprintf("%d files", len(e.Files))
	if e.Failures > 0 {
		details += fmt.Sprintf(" (%d failed)", e.Failures)
	}
	return details
}
