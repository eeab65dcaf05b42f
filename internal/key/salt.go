package key

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
)

// SaltLen is the number of random bytes in a Salt.
const SaltLen = 64

// Salt is the per-operation random value shared by every key hash and
// cipher stage of one encryption. It is comparable and can be used as a
// map key.
type Salt struct {
	b [SaltLen]byte
}

// NewSalt generates a random salt.
func NewSalt() (Salt, error) {
	var s Salt
	if _, err := rand.Read(s.b[:]); err != nil {
		return Salt{}, kerrors.Wrap(kerrors.ErrKey, err, "could not generate salt")
	}
	return s, nil
}

// NewFixedSalt builds a deterministic salt by repeating the little-endian
// bytes of seed. Only for reproducible output such as test fixtures.
func NewFixedSalt(seed uint64) Salt {
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], seed)
	var s Salt
	for i := range s.b {
		s.b[i] = seedBytes[i%8]
	}
	return s
}

// SaltFromBytes copies b into a Salt. b must be exactly SaltLen bytes.
func SaltFromBytes(b []byte) (Salt, error) {
	if len(b) != SaltLen {
		return Salt{}, kerrors.Wrap(kerrors.ErrFormat, kerrors.ErrSaltLength, "salt has the wrong length").
			WithDetail("expected %d bytes, got %d", SaltLen, len(b))
	}
	var s Salt
	copy(s.b[:], b)
	return s, nil
}

// ParseSalt decodes the unpadded URL-safe base64 form written in headers.
func ParseSalt(encoded string) (Salt, error) {
	b, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Salt{}, kerrors.Wrap(kerrors.ErrFormat, kerrors.ErrInvalidSalt, "salt is not valid base64").
			WithDetail("%v", err)
	}
	return SaltFromBytes(b)
}

// Encode returns the unpadded URL-safe base64 form.
func (s Salt) Encode() string {
	return base64.RawURLEncoding.EncodeToString(s.b[:])
}

// Bytes returns a copy of the salt bytes.
func (s Salt) Bytes() []byte {
	out := make([]byte, SaltLen)
	copy(out, s.b[:])
	return out
}

func (s Salt) Equal(o Salt) bool {
	return s.b == o.b
}

// String shows only the first and last byte.
func (s Salt) String() string {
	return fmt.Sprintf("salt[%d...%d]", s.b[0], s.b[SaltLen-1])
}

// GoString keeps %#v from printing the full value.
func (s Salt) GoString() string {
	return s.String()
}
