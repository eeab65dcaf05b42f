// Package utils provides shared utility functions for endec.
//
// # System Utilities
//
// Functions for interacting with the operating system, used for the audit log:
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - HumanSize: formats byte counts
//
// # I/O Utilities
//
//   - ReadFirstLine: reads a piped key from standard input
//
// # Terminal Utilities
//
// Functions for terminal detection and hidden passphrase input:
//   - IsTerminal: checks if stdin is a terminal
//   - PromptPassphrase: reads a passphrase without echo
//
// # Memory Utilities
//
//   - Zero: scrubs key material and plaintext
//   - ConstantTimeEqual: compares secrets
package utils
