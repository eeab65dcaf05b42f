// Package audit records a history of endec operations.
//
// Every encrypt, decrypt and shred that changes files is recorded in a
// per-user log, so a user can later find out what was encrypted, when and
// with which format version.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	$XDG_DATA_HOME/endec/audit.jsonl
//
// Each entry contains:
//   - A random ID
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - System user and host
//   - Operation name, files and, for encrypt, the format version
//   - The number of files that failed
//
// Keys, salts and checksums are never logged.
//
// # Usage
//
//	entry := audit.NewEntry("encrypt")
//	entry.Files = outputs
//	if err := audit.Log(entry); err != nil {
//	    logger.Warnf("Could not write audit log: %v", err)
//	}
//
// # Failure Handling
//
// Audit logging is best-effort: callers warn and carry on.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
