// Package symmetric runs data through the chain of symmetric ciphers of a
// strategy.
//
// Every stage is keyed with a leading slice of the same stretched key and
// uses a leading slice of the same salt as IV or nonce. Encryption applies
// the stages in order, decryption undoes them in reverse order. Given the
// same key and salt the output is deterministic.
package symmetric

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/key"
	"github.com/PolarWolf314/endec/internal/strategy"
	"github.com/PolarWolf314/endec/internal/utils"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/twofish"
)

const (
	aesKeyLen     = 32
	twofishKeyLen = 16
	cbcIVLen      = 16
)

// Encrypt applies algs to data in order.
func Encrypt(data []byte, sk *key.StretchKey, salt key.Salt, algs []strategy.SymmetricAlg) ([]byte, error) {
	if len(algs) == 0 {
		return nil, kerrors.New(kerrors.ErrCipher, "no symmetric algorithms to encrypt with")
	}
	k, iv := sk.Bytes(), salt.Bytes()
	out := data
	for _, alg := range algs {
		next, err := encryptStage(alg, out, k, iv)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// Decrypt undoes Encrypt, last algorithm first.
func Decrypt(data []byte, sk *key.StretchKey, salt key.Salt, algs []strategy.SymmetricAlg) ([]byte, error) {
	if len(algs) == 0 {
		return nil, kerrors.New(kerrors.ErrCipher, "no symmetric algorithms to decrypt with")
	}
	k, iv := sk.Bytes(), salt.Bytes()
	out := data
	for i := len(algs) - 1; i >= 0; i-- {
		next, err := decryptStage(algs[i], out, k, iv)
		if i < len(algs)-1 {
			utils.Zero(out)
		}
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

func encryptStage(alg strategy.SymmetricAlg, data, k, salt []byte) ([]byte, error) {
	switch alg {
	case strategy.Aes256:
		block, err := newAES(k)
		if err != nil {
			return nil, err
		}
		return cbcEncrypt(block, salt[:cbcIVLen], data), nil
	case strategy.Twofish:
		block, err := newTwofish(k)
		if err != nil {
			return nil, err
		}
		return cbcEncrypt(block, salt[:cbcIVLen], data), nil
	case strategy.XChaCha20:
		return xchacha(k, salt, data)
	default:
		return nil, unknown(alg)
	}
}

func decryptStage(alg strategy.SymmetricAlg, data, k, salt []byte) ([]byte, error) {
	switch alg {
	case strategy.Aes256:
		block, err := newAES(k)
		if err != nil {
			return nil, err
		}
		return cbcDecrypt(alg, block, salt[:cbcIVLen], data)
	case strategy.Twofish:
		block, err := newTwofish(k)
		if err != nil {
			return nil, err
		}
		return cbcDecrypt(alg, block, salt[:cbcIVLen], data)
	case strategy.XChaCha20:
		return xchacha(k, salt, data)
	default:
		return nil, unknown(alg)
	}
}

func newAES(k []byte) (cipher.Block, error) {
	if len(k) < aesKeyLen {
		return nil, keyTooShort(strategy.Aes256, aesKeyLen, len(k))
	}
	block, err := aes.NewCipher(k[:aesKeyLen])
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCipher, err, "could not initialize aes256")
	}
	return block, nil
}

func newTwofish(k []byte) (cipher.Block, error) {
	if len(k) < twofishKeyLen {
		return nil, keyTooShort(strategy.Twofish, twofishKeyLen, len(k))
	}
	block, err := twofish.NewCipher(k[:twofishKeyLen])
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCipher, err, "could not initialize twofish")
	}
	return block, nil
}

func cbcEncrypt(block cipher.Block, iv, data []byte) []byte {
	padded := pad(data, block.BlockSize())
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(padded, padded)
	return padded
}

func cbcDecrypt(alg strategy.SymmetricAlg, block cipher.Block, iv, data []byte) ([]byte, error) {
	bs := block.BlockSize()
	if len(data) == 0 || len(data)%bs != 0 {
		return nil, kerrors.Wrap(kerrors.ErrCipher, kerrors.ErrCiphertextLength,
			fmt.Sprintf("could not decrypt: invalid %s ciphertext", alg)).
			WithDetail("length %d is not a positive multiple of %d", len(data), bs)
	}
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)
	plain, err := unpad(out, bs)
	if err != nil {
		utils.Zero(out)
		return nil, err
	}
	return plain, nil
}

func xchacha(k, salt, data []byte) ([]byte, error) {
	if len(k) < chacha20.KeySize {
		return nil, keyTooShort(strategy.XChaCha20, chacha20.KeySize, len(k))
	}
	c, err := chacha20.NewUnauthenticatedCipher(k[:chacha20.KeySize], salt[:chacha20.NonceSizeX])
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCipher, err, "could not initialize xchacha20")
	}
	out := make([]byte, len(data))
	c.XORKeyStream(out, data)
	return out, nil
}

func keyTooShort(alg strategy.SymmetricAlg, want, got int) error {
	return kerrors.Wrap(kerrors.ErrCipher, kerrors.ErrInvalidKeyLength,
		fmt.Sprintf("stretched key too short for %s", alg)).
		WithDetail("need %d bytes, have %d", want, got)
}

func unknown(alg strategy.SymmetricAlg) error {
	return kerrors.Wrap(kerrors.ErrCipher, kerrors.ErrUnknownAlgorithm,
		fmt.Sprintf("unknown symmetric algorithm %d", int(alg)))
}
