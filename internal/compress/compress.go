// Package compress implements the reversible codecs applied to plaintext
// before it is encrypted.
package compress

import (
	"bytes"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/strategy"

	"github.com/andybalholm/brotli"
)

// Brotli parameters. Part of the file format for strategies using Brotli.
const (
	brotliQuality = 6
	brotliLGWin   = 22
)

// Compress encodes data with alg.
func Compress(alg strategy.CompressionAlg, data []byte) ([]byte, error) {
	switch alg {
	case strategy.CompressionNone:
		return bytes.Clone(data), nil
	case strategy.CompressionBrotli:
		var buf bytes.Buffer
		w := brotli.NewWriterOptions(&buf, brotli.WriterOptions{Quality: brotliQuality, LGWin: brotliLGWin})
		if _, err := w.Write(data); err != nil {
			return nil, kerrors.Wrap(kerrors.ErrFormat, err, "brotli compression failed")
		}
		if err := w.Close(); err != nil {
			return nil, kerrors.Wrap(kerrors.ErrFormat, err, "brotli compression failed")
		}
		return buf.Bytes(), nil
	default:
		return nil, unknown(alg)
	}
}

// Decompress reverses Compress.
func Decompress(alg strategy.CompressionAlg, data []byte) ([]byte, error) {
	switch alg {
	case strategy.CompressionNone:
		return bytes.Clone(data), nil
	case strategy.CompressionBrotli:
		out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, kerrors.Wrap(kerrors.ErrFormat, kerrors.ErrCompression, "could not decompress").
				WithDetail("brotli: %v", err)
		}
		return out, nil
	default:
		return nil, unknown(alg)
	}
}

func unknown(alg strategy.CompressionAlg) error {
	return kerrors.Wrap(kerrors.ErrFormat, kerrors.ErrUnknownAlgorithm,
		fmt.Sprintf("unknown compression algorithm %d", int(alg)))
}
