package workflows

import (
	"bytes"

	"github.com/PolarWolf314/endec/internal/checksum"
	"github.com/PolarWolf314/endec/internal/compress"
	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/header"
	"github.com/PolarWolf314/endec/internal/key"
	"github.com/PolarWolf314/endec/internal/strategy"
	"github.com/PolarWolf314/endec/internal/symmetric"
	"github.com/PolarWolf314/endec/internal/utils"
)

// seal encrypts plain with st and returns the header followed by the
// ciphertext. The checksum covers plain before compression.
func seal(plain []byte, sk *key.StretchKey, salt key.Salt, st strategy.Strategy) ([]byte, error) {
	sum := checksum.Compute(plain)

	packed, err := compress.Compress(st.Compression(), plain)
	if err != nil {
		return nil, err
	}
	defer utils.Zero(packed)

	ciphertext, err := symmetric.Encrypt(packed, sk, salt, st.SymmetricAlgs())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(512 + len(ciphertext))
	if err := header.Write(&buf, header.New(st, salt, sum)); err != nil {
		return nil, err
	}
	buf.Write(ciphertext)
	return buf.Bytes(), nil
}

// opened is the result of undoing seal.
type opened struct {
	header header.Header
	plain  []byte
	actual checksum.Checksum
}

// matches reports whether the recovered plaintext has the checksum stored in
// the header.
func (o opened) matches() bool {
	return o.header.Checksum.Equal(o.actual)
}

// open parses and decrypts data. The stretched key comes from cache, so
// files sharing a salt and version are stretched once. A checksum mismatch
// is not an error here; callers decide with matches.
func open(data []byte, k key.Key, cache *key.Cache) (opened, error) {
	h, ciphertext, err := header.Parse(data)
	if err != nil {
		return opened{}, err
	}
	st, err := h.Strategy()
	if err != nil {
		return opened{}, err
	}

	sk, err := cache.Get(k, h.Salt, st)
	if err != nil {
		return opened{}, err
	}
	defer sk.Destroy()

	packed, err := symmetric.Decrypt(ciphertext, sk, h.Salt, st.SymmetricAlgs())
	if err != nil {
		return opened{}, err
	}
	defer utils.Zero(packed)

	plain, err := compress.Decompress(st.Compression(), packed)
	if err != nil {
		return opened{}, err
	}

	return opened{header: h, plain: plain, actual: checksum.Compute(plain)}, nil
}

func mismatchError(path string, o opened) error {
	return kerrors.Wrap(kerrors.ErrIntegrity, kerrors.ErrChecksumMismatch, "checksum did not match").
		WithPaths(path).
		WithDetail("expected %s, got %s", o.header.Checksum, o.actual)
}
