package utils

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites each slice with zeros. Used to scrub keys and plaintext
// once they are no longer needed.
func Zero(slices ...[]byte) {
	for _, b := range slices {
		for i := range b {
			b[i] = 0
		}
		runtime.KeepAlive(b)
	}
}

// ConstantTimeEqual reports whether a and b are equal without leaking
// where they differ.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
