// Package files handles the filesystem side of a batch: expanding input
// arguments, computing output paths, preflighting the whole batch before
// anything is written, and writing outputs.
//
// # Input Resolution
//
// Arguments may be literal paths, directories or doublestar globs:
//
//	files.ResolveInputs([]string{"notes.txt", "docs/", "**/*.pdf"}, nil)
//
// # Output Paths
//
// Encryption appends an extension (".enc" by default). Decryption strips it,
// or appends ".dec" when the input does not carry it, so an output never
// replaces its input.
//
// # Preflight
//
// Preflight runs before any write. Missing inputs and colliding outputs are
// each reported in a single error listing every offending path.
package files
