// Package workflows provides high-level orchestration for endec commands.
//
// Workflows coordinate the lower packages (files, key, header, symmetric,
// shred, audit) to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Obtains the key
//   - Calls the appropriate workflow function
//   - Formats the result and its warnings for display
//
// Workflows handle everything else:
//   - Resolving inputs and checking the whole batch before any write
//   - Stretching keys and running the file pipeline
//   - Collecting per-file failures
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Encrypt: Encrypts files with the current format version
//   - Decrypt: Decrypts files written by any supported version
//   - Inspect: Shows the header of encrypted files without a key
//   - Shred: Overwrites and removes files
//   - Log: Reads and filters the audit log
//
// # Error Handling
//
// Preflight and key failures abort the batch before anything is written.
// Everything else is collected per file, and once all files were attempted
// the workflow returns its result together with a *kerrors.BatchError:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	var batch *kerrors.BatchError
//	if errors.As(err, &batch) && batch.Mismatches() > 0 {
//	    // Some outputs were written but did not match their checksum.
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It is checked between files; a file in progress always runs to completion.
package workflows
