package utils

import (
	"strings"
	"testing"
)

func TestGetUsername(t *testing.T) {
	name, err := GetUsername()
	if err != nil {
		t.Skipf("No current user in this environment: %v", err)
	}
	if name == "" {
		t.Error("Expected a non-empty username")
	}
}

func TestGetHostname(t *testing.T) {
	name, err := GetHostname()
	if err != nil {
		t.Skipf("No hostname in this environment: %v", err)
	}
	if name == "" {
		t.Error("Expected a non-empty hostname")
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{1 << 30, "1.0 GiB"},
	}
	for _, tc := range tests {
		if got := HumanSize(tc.in); got != tc.want {
			t.Errorf("HumanSize(%d) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestReadFirstLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"secret\nrest", "secret"},
		{"secret\r\n", "secret"},
		{"no newline", "no newline"},
		{"\n", ""},
	}
	for _, tc := range tests {
		got, err := ReadFirstLine(strings.NewReader(tc.in))
		if err != nil {
			t.Fatalf("ReadFirstLine(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ReadFirstLine(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}

	if _, err := ReadFirstLine(strings.NewReader("")); err == nil {
		t.Error("Expected an error for empty input")
	}
}

func TestZero(t *testing.T) {
	a, b := []byte("secret"), []byte{1, 2, 3}
	Zero(a, b, nil)
	for _, s := range [][]byte{a, b} {
		for _, v := range s {
			if v != 0 {
				t.Fatalf("Expected zeroed slice, got %v", s)
			}
		}
	}
}

func TestConstantTimeEqual(t *testing.T) {
	if !ConstantTimeEqual([]byte("abc"), []byte("abc")) {
		t.Error("Equal slices should compare equal")
	}
	if ConstantTimeEqual([]byte("abc"), []byte("abd")) || ConstantTimeEqual([]byte("abc"), []byte("ab")) {
		t.Error("Different slices should not compare equal")
	}
}
