package key

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/strategy"
	"github.com/PolarWolf314/endec/internal/utils"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// Parameters of the key hash algorithms. These are part of the file format:
// changing one breaks every file written with it.
const (
	hashLen = 32

	scryptN = 1 << 14
	scryptR = 8
	scryptP = 1

	argonTime    = 3
	argonMemory  = 4096
	argonThreads = 1

	pbkdf2Iterations = 3000
)

// Stretch derives a StretchKey from k and salt by running the key hash
// algorithms of st in order, each followed by st.StretchCount() indexed
// re-hashes.
func Stretch(k Key, salt Salt, st strategy.Strategy) (*StretchKey, error) {
	if k.IsEmpty() {
		return nil, kerrors.Wrap(kerrors.ErrKey, kerrors.ErrEmptyKey, "cannot stretch an empty key")
	}
	out, err := stretch(k.secret, salt.b[:], st.StretchCount(), st.KeyHashAlgs())
	if err != nil {
		return nil, err
	}
	return NewStretchKey(out), nil
}

func stretch(raw, salt []byte, count int, algs []strategy.KeyHashAlg) ([]byte, error) {
	if len(algs) == 0 {
		return nil, kerrors.New(kerrors.ErrKey, "no key hash algorithms to stretch with")
	}

	data := make([]byte, len(raw))
	copy(data, raw)

	for _, alg := range algs {
		next, err := hash(alg, data, salt)
		utils.Zero(data)
		if err != nil {
			return nil, err
		}
		data = next

		for i := 0; i < count; i++ {
			mixed := binary.LittleEndian.AppendUint64(data, uint64(i))
			next, err := hash(alg, mixed, salt)
			utils.Zero(mixed)
			if err != nil {
				return nil, err
			}
			data = next
		}
	}
	return data, nil
}

// hash applies one key hash algorithm to data.
func hash(alg strategy.KeyHashAlg, data, salt []byte) ([]byte, error) {
	switch alg {
	case strategy.Scrypt:
		out, err := scrypt.Key(data, salt, scryptN, scryptR, scryptP, hashLen)
		if err != nil {
			return nil, kerrors.Wrap(kerrors.ErrKey, err, "scrypt key derivation failed")
		}
		return out, nil
	case strategy.Argon2i:
		return argon2.Key(data, salt, argonTime, argonMemory, argonThreads, hashLen), nil
	case strategy.Argon2id:
		return argon2.IDKey(data, salt, argonTime, argonMemory, argonThreads, hashLen), nil
	case strategy.Sha512:
		return pbkdf2.Key(data, salt, pbkdf2Iterations, hashLen, sha512.New), nil
	default:
		return nil, kerrors.Wrap(kerrors.ErrKey, kerrors.ErrUnknownAlgorithm,
			fmt.Sprintf("unknown key hash algorithm %d", int(alg)))
	}
}
