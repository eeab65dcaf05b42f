// Package header reads and writes the plaintext header that prefixes every
// encrypted file.
//
// The header is five newline-terminated lines:
//
//	github.com/PolarWolf314/endec
//	v 1.1.0
//	salt <base64url>
//	check xx_sha256 <base64url>
//	data:
//
// The ciphertext follows the last newline directly. The strategy used to
// encrypt is not stored: it is resolved from the version line.
package header

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/PolarWolf314/endec/internal/checksum"
	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/key"
	"github.com/PolarWolf314/endec/internal/strategy"

	"github.com/Masterminds/semver/v3"
)

// Marker is the first line of every encrypted file.
const Marker = "github.com/PolarWolf314/endec"

const (
	versionPrefix  = "v "
	saltPrefix     = "salt "
	checksumPrefix = "check "
	dataLine       = "data:"

	// maxLineLen bounds how much of a non-encrypted file is read before
	// giving up on it.
	maxLineLen = 4096
)

// Header is the metadata written before the ciphertext.
type Header struct {
	Version  *semver.Version
	Salt     key.Salt
	Checksum checksum.Checksum
}

// New returns a header for data encrypted with st.
func New(st strategy.Strategy, salt key.Salt, sum checksum.Checksum) Header {
	return Header{Version: st.Version(), Salt: salt, Checksum: sum}
}

// Strategy resolves the strategy the header's version was written with.
func (h Header) Strategy() (strategy.Strategy, error) {
	return strategy.Resolve(h.Version)
}

// Equal reports whether both headers have the same version, salt and checksum.
func (h Header) Equal(o Header) bool {
	if (h.Version == nil) != (o.Version == nil) {
		return false
	}
	if h.Version != nil && !h.Version.Equal(o.Version) {
		return false
	}
	return h.Salt.Equal(o.Salt) && h.Checksum.Equal(o.Checksum)
}

// Write writes the five header lines to w.
func Write(w io.Writer, h Header) error {
	if h.Version == nil {
		return kerrors.Wrap(kerrors.ErrFormat, kerrors.ErrInvalidVersion, "header has no version")
	}
	lines := []string{
		Marker,
		versionPrefix + h.Version.String(),
		saltPrefix + h.Salt.Encode(),
		checksumPrefix + h.Checksum.String(),
		dataLine,
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return kerrors.Wrap(kerrors.ErrIO, err, "could not write header")
		}
	}
	return nil
}

// Bytes returns the encoded header.
func (h Header) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read parses a header from r and resolves its version. On success r is
// positioned at the first ciphertext byte: nothing past the "data:" line is
// consumed.
func Read(r io.Reader) (Header, error) {
	lr := newLineReader(r)

	if err := lr.expectLine(Marker); err != nil {
		return Header{}, err
	}

	rest, err := lr.expectPrefix(versionPrefix)
	if err != nil {
		return Header{}, err
	}
	version, err := strategy.ParseVersion(rest)
	if err != nil {
		return Header{}, err
	}
	if _, err := strategy.Resolve(version); err != nil {
		return Header{}, err
	}

	rest, err = lr.expectPrefix(saltPrefix)
	if err != nil {
		return Header{}, err
	}
	salt, err := key.ParseSalt(rest)
	if err != nil {
		return Header{}, err
	}

	rest, err = lr.expectPrefix(checksumPrefix)
	if err != nil {
		return Header{}, err
	}
	sum, err := checksum.Parse(rest)
	if err != nil {
		return Header{}, err
	}

	if err := lr.expectLine(dataLine); err != nil {
		return Header{}, err
	}

	return Header{Version: version, Salt: salt, Checksum: sum}, nil
}

// Parse reads a header from the start of data and returns it together with
// the ciphertext that follows.
func Parse(data []byte) (Header, []byte, error) {
	r := bytes.NewReader(data)
	h, err := Read(r)
	if err != nil {
		return Header{}, nil, err
	}
	return h, data[len(data)-r.Len():], nil
}

// LooksEncrypted reports whether data starts with the header marker line.
func LooksEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Marker+"\n"))
}

// lineReader reads one byte at a time so it never buffers past a newline.
type lineReader struct {
	br  io.ByteReader
	r   io.Reader
	one [1]byte
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{r: r}
	if br, ok := r.(io.ByteReader); ok {
		lr.br = br
	}
	return lr
}

func (lr *lineReader) readByte() (byte, error) {
	if lr.br != nil {
		return lr.br.ReadByte()
	}
	if _, err := io.ReadFull(lr.r, lr.one[:]); err != nil {
		return 0, err
	}
	return lr.one[0], nil
}

func (lr *lineReader) readLine(expect string) (string, error) {
	var sb strings.Builder
	for {
		b, err := lr.readByte()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return "", kerrors.Wrap(kerrors.ErrFormat, kerrors.ErrTruncatedHeader, "truncated header").
					WithDetail("input ended while expecting %q", expect)
			}
			return "", kerrors.Wrap(kerrors.ErrIO, err, "could not read header")
		}
		if b == '\n' {
			return sb.String(), nil
		}
		if sb.Len() >= maxLineLen {
			return "", unrecognized(expect, sb.String())
		}
		sb.WriteByte(b)
	}
}

func (lr *lineReader) expectLine(want string) error {
	line, err := lr.readLine(want)
	if err != nil {
		return err
	}
	if line != want {
		return unrecognized(want, line)
	}
	return nil
}

func (lr *lineReader) expectPrefix(prefix string) (string, error) {
	line, err := lr.readLine(prefix)
	if err != nil {
		return "", err
	}
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return "", unrecognized(prefix, line)
	}
	return rest, nil
}

func unrecognized(expected, actual string) error {
	const max = 40
	if len(actual) > max {
		actual = actual[:max] + "..."
	}
	return kerrors.Wrap(kerrors.ErrFormat, kerrors.ErrUnrecognizedHeader, "corrupt or unrecognized header").
		WithDetail("expected %q, found %q", expected, actual)
}
