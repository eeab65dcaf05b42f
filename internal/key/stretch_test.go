package key

import (
	"bytes"
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/strategy"

	"github.com/Masterminds/semver/v3"
)

func repeat(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func TestHash_KnownAnswers(t *testing.T) {
	tests := []struct {
		alg  strategy.KeyHashAlg
		want []byte
	}{
		{strategy.Scrypt, []byte{155, 58, 106, 89, 80, 242, 144, 5, 31, 252, 5, 166, 24, 136, 155, 72, 163, 252, 31, 133, 51, 237, 36, 28, 209, 244, 205, 143, 24, 74, 133, 59}},
		{strategy.Argon2i, []byte{185, 104, 27, 29, 146, 244, 30, 59, 105, 203, 84, 240, 187, 231, 32, 214, 168, 131, 227, 206, 203, 206, 241, 90, 245, 151, 171, 56, 209, 220, 145, 68}},
		{strategy.Argon2id, []byte{146, 73, 123, 115, 125, 255, 110, 167, 174, 0, 57, 118, 15, 146, 222, 244, 207, 199, 115, 6, 169, 151, 66, 25, 131, 178, 214, 102, 161, 215, 76, 141}},
		{strategy.Sha512, []byte{188, 243, 63, 250, 102, 212, 13, 123, 200, 237, 71, 176, 152, 157, 122, 117, 92, 128, 226, 83, 139, 63, 234, 131, 207, 209, 204, 26, 227, 96, 247, 8}},
	}

	for _, tc := range tests {
		t.Run(tc.alg.String(), func(t *testing.T) {
			got, err := hash(tc.alg, repeat(1, 32), repeat(2, 32))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("Unexpected digest:\n got: %v\nwant: %v", got, tc.want)
			}
		})
	}
}

func TestHash_UnknownAlgorithm(t *testing.T) {
	_, err := hash(strategy.KeyHashAlg(99), []byte("data"), []byte("salt"))
	if !errors.Is(err, kerrors.ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm, got: %v", err)
	}
}

func TestStretch_IndexMixing(t *testing.T) {
	tests := []struct {
		name  string
		count int
		algs  []strategy.KeyHashAlg
		want  []byte
	}{
		{
			name:  "Sha512NoRepetition",
			count: 0,
			algs:  []strategy.KeyHashAlg{strategy.Sha512},
			want:  []byte{212, 110, 33, 119, 61, 167, 170, 45, 99, 25, 130, 194, 253, 240, 93, 49, 144, 86, 126, 246, 0, 69, 158, 87, 133, 71, 76, 47, 49, 166, 65, 23},
		},
		{
			name:  "Sha512TwoRepetitions",
			count: 2,
			algs:  []strategy.KeyHashAlg{strategy.Sha512},
			want:  []byte{51, 233, 17, 42, 30, 157, 197, 239, 175, 80, 62, 234, 55, 58, 143, 146, 251, 133, 160, 16, 68, 226, 235, 72, 64, 47, 7, 44, 193, 182, 177, 216},
		},
		{
			name:  "ScryptOneRepetition",
			count: 1,
			algs:  []strategy.KeyHashAlg{strategy.Scrypt},
			want:  []byte{21, 39, 217, 136, 1, 140, 164, 234, 213, 132, 182, 47, 130, 183, 134, 130, 51, 122, 4, 224, 175, 14, 253, 44, 71, 200, 209, 58, 188, 49, 116, 248},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := stretch([]byte("s3cr3t!"), repeat(2, 32), tc.count, tc.algs)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("Unexpected key:\n got: %v\nwant: %v", got, tc.want)
			}
		})
	}
}

func TestStretch_RegisteredChains(t *testing.T) {
	if testing.Short() {
		t.Skip("slow key stretching skipped in short mode")
	}

	tests := []struct {
		version string
		want    []byte
	}{
		{"1.0.0", []byte{171, 209, 40, 93, 107, 158, 181, 151, 201, 167, 135, 159, 163, 166, 238, 180, 2, 77, 117, 159, 139, 41, 119, 29, 255, 131, 102, 226, 133, 86, 80, 176}},
		{"1.1.0", []byte{42, 140, 57, 65, 220, 41, 217, 122, 161, 144, 251, 168, 24, 253, 141, 89, 229, 210, 194, 78, 94, 59, 153, 131, 153, 138, 60, 101, 121, 37, 173, 169}},
	}

	for _, tc := range tests {
		t.Run(tc.version, func(t *testing.T) {
			st, err := strategy.Resolve(semver.MustParse(tc.version))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			got, err := stretch([]byte("s3cr3t!"), repeat(2, 32), st.StretchCount(), st.KeyHashAlgs())
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("Unexpected key:\n got: %v\nwant: %v", got, tc.want)
			}
		})
	}
}

func TestStretch_DoesNotModifyInput(t *testing.T) {
	raw := []byte("s3cr3t!")
	if _, err := stretch(raw, repeat(2, 32), 1, []strategy.KeyHashAlg{strategy.Sha512}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(raw) != "s3cr3t!" {
		t.Errorf("Input was modified: %q", raw)
	}
}

func TestStretch_NoAlgorithms(t *testing.T) {
	_, err := stretch([]byte("s3cr3t!"), repeat(2, 32), 1, nil)
	if !errors.Is(err, kerrors.ErrKey) {
		t.Errorf("Expected ErrKey, got: %v", err)
	}
}

func TestStretch_EmptyKey(t *testing.T) {
	_, err := Stretch(Key{}, NewFixedSalt(1), strategy.Current())
	if !errors.Is(err, kerrors.ErrEmptyKey) {
		t.Errorf("Expected ErrEmptyKey, got: %v", err)
	}
}

func TestStretch_SaltChangesKey(t *testing.T) {
	algs := []strategy.KeyHashAlg{strategy.Sha512}
	a, err := stretch([]byte("s3cr3t!"), NewFixedSalt(1).Bytes(), 1, algs)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	b, err := stretch([]byte("s3cr3t!"), NewFixedSalt(2).Bytes(), 1, algs)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("Different salts must give different keys")
	}
}

func BenchmarkHash(b *testing.B) {
	data, salt := repeat(1, 32), repeat(2, 64)
	for _, alg := range []strategy.KeyHashAlg{strategy.Scrypt, strategy.Argon2i, strategy.Argon2id, strategy.Sha512} {
		b.Run(alg.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := hash(alg, data, salt); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
