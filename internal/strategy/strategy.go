// Package strategy holds the append-only table of format versions and the
// algorithm set each version was written with.
//
// A published entry is never changed or removed: every header names its
// version, and the version alone must select the exact algorithms needed
// to decrypt it. Changing an algorithm, a parameter or the cipher chain
// means appending a new entry and bumping CurrentVersion.
package strategy

import (
	"fmt"
	"slices"
	"strings"

	kerrors "github.com/PolarWolf314/endec/internal/errors"

	"github.com/Masterminds/semver/v3"
)

// CurrentVersion is the format version this build writes.
const CurrentVersion = "1.1.0"

// Strategy is the immutable set of algorithm choices for one format version.
type Strategy struct {
	version       *semver.Version
	stretchCount  int
	compression   CompressionAlg
	keyHashAlgs   []KeyHashAlg
	symmetricAlgs []SymmetricAlg
}

// Version returns the version the strategy was registered under.
func (s Strategy) Version() *semver.Version { return s.version }

// StretchCount is the number of extra rounds per key hash algorithm.
func (s Strategy) StretchCount() int { return s.stretchCount }

func (s Strategy) Compression() CompressionAlg { return s.compression }

// KeyHashAlgs returns a copy of the ordered key hash chain.
func (s Strategy) KeyHashAlgs() []KeyHashAlg { return slices.Clone(s.keyHashAlgs) }

// SymmetricAlgs returns a copy of the ordered cipher chain.
func (s Strategy) SymmetricAlgs() []SymmetricAlg { return slices.Clone(s.symmetricAlgs) }

func (s Strategy) String() string {
	hashes := make([]string, len(s.keyHashAlgs))
	for i, a := range s.keyHashAlgs {
		hashes[i] = a.String()
	}
	ciphers := make([]string, len(s.symmetricAlgs))
	for i, a := range s.symmetricAlgs {
		ciphers[i] = a.String()
	}
	return fmt.Sprintf("v%s: stretch %d, compress %s, hash [%s], cipher [%s]",
		s.version, s.stretchCount, s.compression,
		strings.Join(hashes, ", "), strings.Join(ciphers, ", "))
}

// registry is ordered by ascending version. Append only.
var registry = []Strategy{
	{
		version:       semver.MustParse("1.0.0"),
		stretchCount:  5,
		compression:   CompressionBrotli,
		keyHashAlgs:   []KeyHashAlg{Scrypt, Argon2i, Sha512},
		symmetricAlgs: []SymmetricAlg{Aes256, Twofish},
	},
	{
		version:       semver.MustParse("1.1.0"),
		stretchCount:  5,
		compression:   CompressionBrotli,
		keyHashAlgs:   []KeyHashAlg{Scrypt, Argon2id, Sha512},
		symmetricAlgs: []SymmetricAlg{Aes256, Twofish, XChaCha20},
	},
}

var current = semver.MustParse(CurrentVersion)

// ParseVersion parses a strict major.minor.patch version.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrFormat, kerrors.ErrInvalidVersion, "invalid format version").
			WithDetail("could not parse %q: %v", s, err)
	}
	return v, nil
}

// Resolve returns the strategy for the highest registered version that is
// not above v.
//
// Versions older than the first entry fail with ErrVersionTooOld. Versions
// newer than CurrentVersion fail with ErrVersionTooNew: such files may use
// algorithms this build does not know.
func Resolve(v *semver.Version) (Strategy, error) {
	if v == nil {
		return Strategy{}, kerrors.Wrap(kerrors.ErrVersion, kerrors.ErrInvalidVersion, "missing format version")
	}
	if v.GreaterThan(current) {
		return Strategy{}, kerrors.Wrap(kerrors.ErrVersion, kerrors.ErrVersionTooNew,
			fmt.Sprintf("cannot decrypt a file from newer version %s", v)).
			WithDetail("this build supports format versions up to %s", current)
	}
	for i := len(registry) - 1; i >= 0; i-- {
		if !registry[i].version.GreaterThan(v) {
			return registry[i], nil
		}
	}
	return Strategy{}, kerrors.Wrap(kerrors.ErrVersion, kerrors.ErrVersionTooOld,
		fmt.Sprintf("cannot decrypt format version %s", v)).
		WithDetail("the oldest supported version is %s", registry[0].version)
}

// Current returns the strategy this build encrypts with.
func Current() Strategy {
	s, err := Resolve(current)
	if err != nil {
		panic(fmt.Sprintf("current version %s does not resolve: %v", current, err))
	}
	return s
}

// Versions lists every registered version in ascending order.
func Versions() []*semver.Version {
	versions := make([]*semver.Version, len(registry))
	for i, s := range registry {
		versions[i] = s.version
	}
	return versions
}
