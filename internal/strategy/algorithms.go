package strategy

// CompressionAlg selects the codec applied to plaintext before encryption.
type CompressionAlg int

const (
	CompressionNone CompressionAlg = iota
	CompressionBrotli
)

func (c CompressionAlg) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionBrotli:
		return "brotli"
	default:
		return "unknown"
	}
}

// KeyHashAlg is a slow hash with a fixed parameter set. Parameters of an
// existing variant never change; new parameters get a new variant.
type KeyHashAlg int

const (
	// Scrypt is scrypt with N=2^14, r=8, p=1 and a 32-byte output.
	Scrypt KeyHashAlg = iota + 1

	// Argon2i is Argon2i with t=3, m=4096 KiB, p=1 and a 32-byte output.
	Argon2i

	// Sha512 is PBKDF2-HMAC-SHA512 with 3000 iterations and a 32-byte output.
	Sha512

	// Argon2id is Argon2id with t=3, m=4096 KiB, p=1 and a 32-byte output.
	Argon2id
)

func (k KeyHashAlg) String() string {
	switch k {
	case Scrypt:
		return "scrypt"
	case Argon2i:
		return "argon2i"
	case Argon2id:
		return "argon2id"
	case Sha512:
		return "sha512"
	default:
		return "unknown"
	}
}

// SymmetricAlg is one stage of the cipher chain.
type SymmetricAlg int

const (
	// Aes256 is AES-256 in CBC mode with ISO/IEC 7816-4 padding.
	Aes256 SymmetricAlg = iota + 1

	// Twofish is Twofish with a 128-bit key in CBC mode with ISO/IEC 7816-4 padding.
	Twofish

	// XChaCha20 is the XChaCha20 stream cipher with a 24-byte nonce.
	XChaCha20
)

func (s SymmetricAlg) String() string {
	switch s {
	case Aes256:
		return "aes256"
	case Twofish:
		return "twofish"
	case XChaCha20:
		return "xchacha20"
	default:
		return "unknown"
	}
}
