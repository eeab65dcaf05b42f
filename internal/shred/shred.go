// Package shred erases files on a best-effort basis: the content is
// overwritten several times, the metadata is reset, the file is renamed a
// few times and finally removed.
//
// Journaling filesystems, SSD wear leveling and backups may keep copies this
// package cannot reach.
package shred

import (
	"crypto/rand"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	kerrors "github.com/PolarWolf314/endec/internal/errors"

	"github.com/google/uuid"
)

const blockSize = 512

// patterns are written before any random pass.
var patterns = []byte{0x00, 0xFF, 0x55, 0xAA}

// Options controls how a file is shredded.
type Options struct {
	// OverwriteCount is the number of overwrite passes. The first passes
	// write fixed patterns, the final pass is always random.
	OverwriteCount int

	// RenameCount is the number of times the file is renamed before removal.
	RenameCount int

	// Keep skips renaming and removal, leaving an empty file behind.
	Keep bool
}

// DefaultOptions are used when no configuration overrides them.
var DefaultOptions = Options{OverwriteCount: 10, RenameCount: 10}

// File shreds the regular file at path.
func File(path string, opts Options) error {
	info, err := os.Lstat(path)
	if err != nil {
		return kerrors.Wrap(kerrors.ErrIO, err, "could not shred file").WithPaths(path)
	}
	if !info.Mode().IsRegular() {
		return kerrors.New(kerrors.ErrIO, "can only shred regular files").WithPaths(path)
	}

	if err := overwriteFile(path, info.Size(), opts.OverwriteCount); err != nil {
		return err
	}
	if err := resetMetadata(path); err != nil {
		return err
	}
	if opts.Keep {
		return nil
	}

	final, err := renameRepeatedly(path, opts.RenameCount)
	if err != nil {
		return err
	}
	if err := os.Remove(final); err != nil {
		return kerrors.Wrap(kerrors.ErrIO, err, "could not remove shredded file").WithPaths(final)
	}
	return nil
}

func overwriteFile(path string, size int64, count int) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return kerrors.Wrap(kerrors.ErrIO, err, "could not open file for shredding").WithPaths(path)
	}
	defer f.Close()

	if err := overwrite(f, size, count); err != nil {
		return kerrors.Wrap(kerrors.ErrIO, err, "could not overwrite file").WithPaths(path)
	}
	return nil
}

// overwrite runs count passes over the first size bytes of f, syncing after
// each pass when f supports it. Writes are whole blocks, so the file may
// grow up to the next block boundary.
func overwrite(f io.WriteSeeker, size int64, count int) error {
	for pass := 0; pass < count; pass++ {
		fill := randomBlock
		if pass < len(patterns) && pass < count-1 {
			fill = constantBlock(patterns[pass])
		}
		if err := overwritePass(f, size, fill); err != nil {
			return err
		}
		if s, ok := f.(interface{ Sync() error }); ok {
			if err := s.Sync(); err != nil {
				return err
			}
		}
	}
	return nil
}

func overwritePass(f io.WriteSeeker, size int64, fill func([]byte) error) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	block := make([]byte, blockSize)
	steps := (size + blockSize - 1) / blockSize
	for i := int64(0); i < steps; i++ {
		if err := fill(block); err != nil {
			return err
		}
		if _, err := f.Write(block); err != nil {
			return err
		}
	}
	return nil
}

func constantBlock(value byte) func([]byte) error {
	return func(b []byte) error {
		for i := range b {
			b[i] = value
		}
		return nil
	}
}

func randomBlock(b []byte) error {
	_, err := rand.Read(b)
	return err
}

func resetMetadata(path string) error {
	if err := os.Truncate(path, 0); err != nil {
		return kerrors.Wrap(kerrors.ErrIO, err, "could not truncate shredded file").WithPaths(path)
	}
	epoch := time.Unix(0, 0)
	if err := os.Chtimes(path, epoch, epoch); err != nil {
		return kerrors.Wrap(kerrors.ErrIO, err, "could not reset file times").WithPaths(path)
	}
	return nil
}

// renameRepeatedly moves path to count random names in the same directory
// and returns the final name.
func renameRepeatedly(path string, count int) (string, error) {
	dir := filepath.Dir(path)
	current := path
	for i := 0; i < count; i++ {
		next, err := freeName(dir)
		if err != nil {
			return current, err
		}
		if err := os.Rename(current, next); err != nil {
			return current, kerrors.Wrap(kerrors.ErrIO, err, "could not rename file during shredding").WithPaths(current)
		}
		current = next
	}
	return current, nil
}

func freeName(dir string) (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		candidate := filepath.Join(dir, uuid.NewString()[:8]+".tmp")
		if _, err := os.Lstat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
	}
	return "", kerrors.New(kerrors.ErrIO, "could not find a free name while shredding").WithPaths(dir)
}
