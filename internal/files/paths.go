package files

import (
	"path/filepath"
	"strings"
)

// DefaultExtension is appended to encrypted files.
const DefaultExtension = ".enc"

// decryptedSuffix is appended when there is no extension to strip.
const decryptedSuffix = ".dec"

// EncryptedPath returns where the encryption of input is written: its name
// plus ext, next to input or inside outDir when set.
func EncryptedPath(input, ext, outDir string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	return place(input, filepath.Base(input)+ext, outDir)
}

// DecryptedPath returns where the decryption of input is written. ext is
// stripped from the name when present, otherwise ".dec" is appended. The
// result never equals input.
func DecryptedPath(input, ext, outDir string) string {
	base := filepath.Base(input)
	name := base + decryptedSuffix
	if ext != "" {
		if trimmed, ok := strings.CutSuffix(base, ext); ok && trimmed != "" {
			name = trimmed
		}
	}

	out := place(input, name, outDir)
	if sameFile(out, input) {
		out += decryptedSuffix
	}
	return out
}

func place(input, name, outDir string) string {
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
