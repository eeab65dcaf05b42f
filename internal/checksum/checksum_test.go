package checksum

import (
	"bytes"
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
)

// fibonacciBytes returns n bytes of a Fibonacci sequence modulo 256.
func fibonacciBytes(n int) []byte {
	out := make([]byte, n)
	a, b := 1, 1
	for i := range out {
		c := (a + b) % 256
		out[i] = byte(c)
		a, b = b, c
	}
	return out
}

func incrementing(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

func TestCompute_KnownAnswers(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    []byte
		encoded string
	}{
		{
			name:    "Empty",
			data:    []byte{},
			want:    []byte{139, 204, 237, 33, 73, 127, 240, 189, 34, 113, 35, 206, 233, 167, 141, 249},
			encoded: "xx_sha256 i8ztIUl_8L0icSPO6aeN-Q",
		},
		{
			name:    "HelloWorld",
			data:    []byte("hello world"),
			want:    []byte{178, 49, 230, 175, 124, 46, 45, 195, 9, 212, 141, 192, 246, 177, 128, 72},
			encoded: "xx_sha256 sjHmr3wuLcMJ1I3A9rGASA",
		},
		{
			name:    "Incrementing71",
			data:    incrementing(71),
			want:    []byte{101, 101, 130, 77, 38, 181, 120, 18, 184, 111, 38, 116, 129, 110, 195, 130},
			encoded: "xx_sha256 ZWWCTSa1eBK4byZ0gW7Dgg",
		},
		{
			name: "Fibonacci15001",
			data: fibonacciBytes(15001),
			want: []byte{219, 36, 108, 103, 132, 201, 242, 88, 202, 217, 207, 138, 186, 93, 68, 203},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sum := Compute(tc.data)
			if sum.Algorithm() != XxSha256 {
				t.Errorf("Expected xx_sha256, got: %s", sum.Algorithm())
			}
			if !bytes.Equal(sum.Value(), tc.want) {
				t.Errorf("Unexpected checksum:\n got: %v\nwant: %v", sum.Value(), tc.want)
			}
			if tc.encoded != "" && sum.String() != tc.encoded {
				t.Errorf("Expected %q, got %q", tc.encoded, sum.String())
			}
		})
	}
}

func TestCompute_Sensitivity(t *testing.T) {
	data := incrementing(71)
	base := Compute(data)

	data[70] ^= 0x01
	if Compute(data).Equal(base) {
		t.Error("Flipping one bit must change the checksum")
	}
}

func TestParse(t *testing.T) {
	sum, err := Parse("xx_sha256 AQIDBAAABQYHCP-qWg")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	want := New(XxSha256, []byte{1, 2, 3, 4, 0, 0, 5, 6, 7, 8, 255, 170, 90})
	if !sum.Equal(want) {
		t.Errorf("Unexpected checksum: %s", sum)
	}
	if sum.String() != "xx_sha256 AQIDBAAABQYHCP-qWg" {
		t.Errorf("Round trip changed the text: %s", sum)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, bad := range []string{"", "xx_sha256", "md5 AQID", "xx_sha256 ***"} {
		_, err := Parse(bad)
		if !errors.Is(err, kerrors.ErrInvalidChecksum) {
			t.Errorf("Parse(%q): expected ErrInvalidChecksum, got: %v", bad, err)
		}
		if !errors.Is(err, kerrors.ErrFormat) {
			t.Errorf("Parse(%q): expected ErrFormat kind, got: %v", bad, err)
		}
	}
}

func TestEqual_RequiresSameAlgorithm(t *testing.T) {
	a := New(XxSha256, []byte{1, 2, 3})
	b := New(Algorithm(99), []byte{1, 2, 3})
	if a.Equal(b) {
		t.Error("Checksums with different algorithms must not be equal")
	}
}

func BenchmarkCompute(b *testing.B) {
	data := fibonacciBytes(1 << 20)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		Compute(data)
	}
}
