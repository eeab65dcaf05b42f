// Package errors provides typed error values for the endec application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Every
// failure raised by the internal packages is an *Error carrying one of the
// category sentinels as its Kind, so both the broad category and the precise
// cause can be tested:
//
//	errors.Is(err, kerrors.ErrFormat)             // any header problem
//	errors.Is(err, kerrors.ErrUnrecognizedHeader) // the precise one
//
// # Error Categories
//
//   - I/O errors: file open/read/write failures (ErrIO)
//   - Format errors: malformed headers or payloads (ErrFormat)
//   - Version errors: format versions this build cannot read (ErrVersion)
//   - Cipher errors: bad padding, bad key or IV lengths (ErrCipher)
//   - Integrity errors: checksum mismatches after decryption (ErrIntegrity)
//   - Preflight errors: missing inputs, colliding outputs (ErrPreflight)
//   - Key errors: key sources and key derivation (ErrKey)
//   - Config errors: unreadable or invalid configuration (ErrConfig)
//
// # Verbosity
//
// An *Error renders at two levels. Error() is the terse message shown to
// every user. Verbose() appends the detail (expected vs. actual values,
// checksums) and the underlying cause, and is shown with --verbose:
//
//	fmt.Println(kerrors.Describe(err, verbose))
//
// # Batches
//
// Encrypt and decrypt process many files and keep going after a per-file
// failure. The failures are collected into a *BatchError that is returned
// once every file was attempted. errors.Is on a *BatchError matches any of
// the collected failures.
package errors
