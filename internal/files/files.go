package files

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
)

// LargeFileThreshold is the size above which reading a whole file into
// memory earns a warning.
const LargeFileThreshold int64 = 1 << 30

// outputPerm is the mode of every file written.
const outputPerm = 0600

// FileInfo is the preflight result for one input file.
type FileInfo struct {
	Input  string
	Size   int64
	Output string
}

// IsLarge reports whether the input exceeds LargeFileThreshold.
func (f FileInfo) IsLarge() bool {
	return f.Size > LargeFileThreshold
}

// CheckInputs stats every input. All inputs that are missing or not
// regular files are reported in one error.
func CheckInputs(inputs []string) ([]FileInfo, error) {
	var (
		infos   []FileInfo
		missing []string
	)
	for _, in := range inputs {
		st, err := os.Stat(in)
		if err != nil || !st.Mode().IsRegular() {
			missing = append(missing, in)
			continue
		}
		infos = append(infos, FileInfo{Input: in, Size: st.Size()})
	}

	if len(missing) > 0 {
		return nil, kerrors.Wrap(kerrors.ErrPreflight, kerrors.ErrInputNotFound, "input files not found").
			WithPaths(missing...).
			WithDetail("every input must be an existing regular file")
	}
	return infos, nil
}

// Preflight checks the whole batch before anything is written. Every input
// must be an existing regular file and, unless overwrite is set, no output
// may exist yet. Two inputs never share an output, and no output may be
// another input of the batch. All missing inputs are reported in one error,
// as are all colliding outputs.
func Preflight(inputs []string, output func(input string) string, overwrite bool) ([]FileInfo, error) {
	infos, err := CheckInputs(inputs)
	if err != nil {
		return nil, err
	}

	isInput := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		isInput[absOrClean(in)] = true
	}
	claimed := make(map[string]bool, len(inputs))

	var collisions []string
	for i := range infos {
		out := output(infos[i].Input)
		key := absOrClean(out)
		switch {
		case claimed[key], isInput[key]:
			collisions = append(collisions, out)
		case !overwrite && exists(out):
			collisions = append(collisions, out)
		}
		claimed[key] = true
		infos[i].Output = out
	}

	if len(collisions) > 0 {
		return nil, kerrors.Wrap(kerrors.ErrPreflight, kerrors.ErrOutputExists, "output files already exist").
			WithPaths(collisions...).
			WithDetail("use --overwrite to replace existing files; outputs may not collide with each other or with inputs")
	}

	return infos, nil
}

// ReadInput reads a whole input file.
func ReadInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrIO, err, "could not read file").WithPaths(path)
	}
	return data, nil
}

// WriteOutput creates path and fills it with write through a buffered
// writer. Without overwrite an existing file is an error. A failed write
// removes what was written.
func WriteOutput(path string, overwrite bool, write func(w io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return kerrors.Wrap(kerrors.ErrIO, err, "could not create output directory").WithPaths(dir)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, outputPerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return kerrors.Wrap(kerrors.ErrPreflight, kerrors.ErrOutputExists, "output file already exists").WithPaths(path)
		}
		return kerrors.Wrap(kerrors.ErrIO, err, "could not create file").WithPaths(path)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return kerrors.Wrap(kerrors.ErrIO, err, "could not write file").WithPaths(path)
	}
	if err := f.Close(); err != nil {
		return kerrors.Wrap(kerrors.ErrIO, err, "could not close file").WithPaths(path)
	}
	return nil
}

// Remove deletes a file that was fully processed.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return kerrors.Wrap(kerrors.ErrIO, err, "could not remove file").WithPaths(path)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func absOrClean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
