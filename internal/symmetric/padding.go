package symmetric

import (
	kerrors "github.com/PolarWolf314/endec/internal/errors"
)

// pad applies ISO/IEC 7816-4 padding: a 0x80 byte followed by zeros up to
// the next block boundary. At least one byte is always added.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	out[len(data)] = 0x80
	return out
}

// unpad removes ISO/IEC 7816-4 padding. The marker must be in the last block.
func unpad(data []byte, blockSize int) ([]byte, error) {
	for i := len(data) - 1; i >= 0 && i >= len(data)-blockSize; i-- {
		switch data[i] {
		case 0x00:
			continue
		case 0x80:
			return data[:i], nil
		default:
			return nil, badPadding()
		}
	}
	return nil, badPadding()
}

func badPadding() error {
	return kerrors.Wrap(kerrors.ErrCipher, kerrors.ErrBadPadding, "could not decrypt: bad padding").
		WithDetail("the key is wrong or the file is corrupt")
}
