package shred

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
)

// memFile is an in-memory io.WriteSeeker that records the content after
// every pass.
type memFile struct {
	data   []byte
	pos    int64
	passes [][]byte
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[m.pos:], p)
	m.pos = end
	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, errors.New("only SeekStart is supported")
	}
	m.pos = offset
	return offset, nil
}

func (m *memFile) Sync() error {
	m.passes = append(m.passes, bytes.Clone(m.data))
	return nil
}

func TestOverwritePass_Constant(t *testing.T) {
	f := &memFile{data: []byte("hello world")}
	if err := overwritePass(f, 11, constantBlock(0x55)); err != nil {
		t.Fatalf("overwritePass failed: %v", err)
	}
	if len(f.data) != blockSize {
		t.Errorf("Expected one full block, got %d bytes", len(f.data))
	}
	if !bytes.Equal(f.data, bytes.Repeat([]byte{'U'}, blockSize)) {
		t.Error("Expected the whole block to be 0x55")
	}
}

func TestOverwritePass_Long(t *testing.T) {
	size := int64(65_536 + 1)
	f := &memFile{data: make([]byte, size)}
	if err := overwritePass(f, size, constantBlock('m')); err != nil {
		t.Fatalf("overwritePass failed: %v", err)
	}
	if len(f.data) != 65_536+blockSize {
		t.Errorf("Expected %d bytes, got %d", 65_536+blockSize, len(f.data))
	}
	if !bytes.HasPrefix(f.data, []byte("mmmmmm")) || !bytes.HasSuffix(f.data, []byte("mmmmmm")) {
		t.Error("Expected the file to be overwritten from start to end")
	}
}

func TestOverwrite_PassOrder(t *testing.T) {
	tests := []struct {
		count     int
		constants []byte
	}{
		{1, nil},
		{2, []byte{0x00}},
		{3, []byte{0x00, 0xFF}},
		{10, []byte{0x00, 0xFF, 0x55, 0xAA}},
	}

	for _, tc := range tests {
		f := &memFile{data: []byte("secret content")}
		if err := overwrite(f, int64(len(f.data)), tc.count); err != nil {
			t.Fatalf("overwrite failed: %v", err)
		}
		if len(f.passes) != tc.count {
			t.Fatalf("count %d: expected %d synced passes, got %d", tc.count, tc.count, len(f.passes))
		}
		for i, want := range tc.constants {
			if !bytes.Equal(f.passes[i], bytes.Repeat([]byte{want}, blockSize)) {
				t.Errorf("count %d: pass %d should be 0x%02X", tc.count, i, want)
			}
		}
		last := f.passes[len(f.passes)-1]
		if bytes.Equal(last, make([]byte, blockSize)) || bytes.Contains(last, []byte("secret")) {
			t.Errorf("count %d: final pass should be random", tc.count)
		}
	}
}

func TestFile_Removes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.txt")
	if err := os.WriteFile(path, []byte("top secret"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := File(path, Options{OverwriteCount: 3, RenameCount: 3}); err != nil {
		t.Fatalf("File failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected an empty directory, found %d entries", len(entries))
	}
}

func TestFile_Keep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(path, []byte("top secret"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := File(path, Options{OverwriteCount: 2, RenameCount: 5, Keep: true}); err != nil {
		t.Fatalf("File failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Kept file should still exist: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Kept file should be truncated, size %d", info.Size())
	}
	if info.ModTime().Unix() != 0 {
		t.Errorf("Expected mtime reset to the epoch, got %v", info.ModTime())
	}
}

func TestFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := File(filepath.Join(dir, "missing"), DefaultOptions)
	if !errors.Is(err, kerrors.ErrIO) {
		t.Errorf("Expected ErrIO for a missing file, got: %v", err)
	}

	err = File(dir, DefaultOptions)
	if !errors.Is(err, kerrors.ErrIO) {
		t.Errorf("Expected ErrIO for a directory, got: %v", err)
	}
}

func TestRenameRepeatedly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "original.file")
	data := []byte("hello world, this is test data")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	final, err := renameRepeatedly(path, 5)
	if err != nil {
		t.Fatalf("renameRepeatedly failed: %v", err)
	}
	if filepath.Dir(final) != dir {
		t.Errorf("Renamed file left its directory: %s", final)
	}
	if filepath.Ext(final) != ".tmp" {
		t.Errorf("Expected a .tmp name, got %s", final)
	}
	got, err := os.ReadFile(final)
	if err != nil {
		t.Fatalf("Failed to read renamed file: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Renaming changed the content")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Original name should be gone")
	}
}
