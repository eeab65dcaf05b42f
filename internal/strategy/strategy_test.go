package strategy

import (
	"errors"
	"slices"
	"testing"

	kerrors "github.com/PolarWolf314/endec/internal/errors"

	"github.com/Masterminds/semver/v3"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.0.0", "1.0.0"},
		{"1.0.7", "1.0.0"},
		{"1.1.0-rc.1", "1.0.0"},
		{"1.1.0", "1.1.0"},
	}

	for _, tc := range tests {
		t.Run(tc.version, func(t *testing.T) {
			s, err := Resolve(semver.MustParse(tc.version))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if s.Version().String() != tc.want {
				t.Errorf("Resolve(%s) = %s, expected %s", tc.version, s.Version(), tc.want)
			}
		})
	}
}

func TestResolve_TooOld(t *testing.T) {
	for _, v := range []string{"0.0.1", "0.9.9", "1.0.0-alpha"} {
		_, err := Resolve(semver.MustParse(v))
		if !errors.Is(err, kerrors.ErrVersionTooOld) {
			t.Errorf("Resolve(%s): expected ErrVersionTooOld, got: %v", v, err)
		}
		if !errors.Is(err, kerrors.ErrVersion) {
			t.Errorf("Resolve(%s): expected ErrVersion kind, got: %v", v, err)
		}
	}
}

func TestResolve_TooNew(t *testing.T) {
	for _, v := range []string{"1.1.1", "1.2.0", "2.0.0"} {
		_, err := Resolve(semver.MustParse(v))
		if !errors.Is(err, kerrors.ErrVersionTooNew) {
			t.Errorf("Resolve(%s): expected ErrVersionTooNew, got: %v", v, err)
		}
	}
}

func TestResolve_Nil(t *testing.T) {
	if _, err := Resolve(nil); !errors.Is(err, kerrors.ErrVersion) {
		t.Errorf("Expected ErrVersion for nil version, got: %v", err)
	}
}

func TestCurrent(t *testing.T) {
	s := Current()
	if s.Version().String() != CurrentVersion {
		t.Errorf("Expected current version %s, got %s", CurrentVersion, s.Version())
	}
	if len(s.KeyHashAlgs()) == 0 || len(s.SymmetricAlgs()) == 0 {
		t.Error("Current strategy must have key hash and symmetric algorithms")
	}
}

// Published entries are part of the file format and must never change.
func TestRegistry_PublishedEntries(t *testing.T) {
	v100, err := Resolve(semver.MustParse("1.0.0"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if v100.StretchCount() != 5 || v100.Compression() != CompressionBrotli {
		t.Errorf("Unexpected 1.0.0 parameters: %s", v100)
	}
	if !slices.Equal(v100.KeyHashAlgs(), []KeyHashAlg{Scrypt, Argon2i, Sha512}) {
		t.Errorf("Unexpected 1.0.0 key hashes: %v", v100.KeyHashAlgs())
	}
	if !slices.Equal(v100.SymmetricAlgs(), []SymmetricAlg{Aes256, Twofish}) {
		t.Errorf("Unexpected 1.0.0 ciphers: %v", v100.SymmetricAlgs())
	}

	v110, err := Resolve(semver.MustParse("1.1.0"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !slices.Equal(v110.KeyHashAlgs(), []KeyHashAlg{Scrypt, Argon2id, Sha512}) {
		t.Errorf("Unexpected 1.1.0 key hashes: %v", v110.KeyHashAlgs())
	}
	if !slices.Equal(v110.SymmetricAlgs(), []SymmetricAlg{Aes256, Twofish, XChaCha20}) {
		t.Errorf("Unexpected 1.1.0 ciphers: %v", v110.SymmetricAlgs())
	}
}

func TestRegistry_Ordered(t *testing.T) {
	versions := Versions()
	for i := 1; i < len(versions); i++ {
		if !versions[i-1].LessThan(versions[i]) {
			t.Errorf("Registry not ascending at %d: %s >= %s", i, versions[i-1], versions[i])
		}
	}
	if versions[len(versions)-1].String() != CurrentVersion {
		t.Errorf("Last registered version %s should be the current version %s", versions[len(versions)-1], CurrentVersion)
	}
}

func TestStrategy_AccessorsReturnCopies(t *testing.T) {
	s := Current()
	algs := s.SymmetricAlgs()
	algs[0] = XChaCha20
	if Current().SymmetricAlgs()[0] != Aes256 {
		t.Error("Mutating the returned slice must not change the registry")
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.0.0")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if v.String() != "1.0.0" {
		t.Errorf("Expected 1.0.0, got %s", v)
	}

	for _, bad := range []string{"", "1.0", "v1.0.0", "one.two.three", "1.0.0.0"} {
		_, err := ParseVersion(bad)
		if !errors.Is(err, kerrors.ErrInvalidVersion) {
			t.Errorf("ParseVersion(%q): expected ErrInvalidVersion, got: %v", bad, err)
		}
	}
}
