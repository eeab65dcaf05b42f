package workflows

import (
	"context"
	"io"

	"github.com/PolarWolf314/endec/internal/audit"
	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/files"
	"github.com/PolarWolf314/endec/internal/key"
	"github.com/PolarWolf314/endec/internal/utils"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Inputs are file paths, directories or glob patterns. Directories
	// contribute only files ending in Extension.
	Inputs []string

	// Key is the passphrase the files were encrypted with.
	Key key.Key

	// Extension is stripped from each input to name its output. Empty
	// means files.DefaultExtension.
	Extension string

	// OutputDir places outputs in this directory instead of beside the inputs.
	OutputDir string

	// Overwrite allows replacing existing output files.
	Overwrite bool

	// DeleteInput removes each input once its plaintext was written and
	// its checksum matched.
	DeleteInput bool

	// DryRun decrypts and verifies without writing or deleting files.
	DryRun bool

	// Audit records the operation in the audit log.
	Audit bool
}

// DecryptedFile is the outcome for one file of a decrypt batch.
type DecryptedFile struct {
	FileResult

	// Version is the format version found in the header.
	Version string

	// Mismatch is set when the recovered plaintext did not match the
	// checksum in the header. The output is written regardless.
	Mismatch bool
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Files holds one result per input, in processing order.
	Files []DecryptedFile

	// Stretches is the number of times the key was stretched.
	Stretches int

	// Warnings are non-fatal problems the caller should show.
	Warnings []string

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool
}

// Mismatches counts the files whose checksum did not match.
func (r *DecryptResult) Mismatches() int {
	n := 0
	for _, f := range r.Files {
		if f.Mismatch {
			n++
		}
	}
	return n
}

// Decrypt decrypts every input with the strategy named in its header.
//
// Preflight works as in Encrypt. The key is stretched once per distinct
// salt and version. A checksum mismatch does not stop the batch: the
// output is still written, and the mismatch is reported through the
// returned *kerrors.BatchError after every file was attempted.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	ext := opts.Extension
	if ext == "" {
		ext = files.DefaultExtension
	}

	inputs, err := files.ResolveInputs(opts.Inputs, files.HasExtension(ext))
	if err != nil {
		return nil, err
	}
	infos, err := files.Preflight(inputs, func(in string) string {
		return files.DecryptedPath(in, ext, opts.OutputDir)
	}, opts.Overwrite)
	if err != nil {
		return nil, err
	}

	if opts.Key.IsEmpty() {
		return nil, kerrors.Wrap(kerrors.ErrKey, kerrors.ErrEmptyKey, "cannot decrypt with an empty key")
	}

	cache := key.NewCache()
	defer cache.Close()

	result := &DecryptResult{DryRun: opts.DryRun}
	batch := &kerrors.BatchError{Op: "decrypt"}
	var written []string

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		df, mismatch := decryptFile(info, opts, cache)
		batch.Add(mismatch)
		batch.Add(df.Err)
		if df.Version != "" && df.Err == nil && !opts.DryRun {
			written = append(written, info.Output)
		}
		result.Files = append(result.Files, df)
	}
	_, result.Stretches = cache.Stats()

	if opts.Audit && !opts.DryRun {
		entry := audit.NewEntry("decrypt")
		entry.Files = written
		entry.Failures = len(batch.Failures)
		result.Warnings = appendAuditWarning(result.Warnings, audit.Log(entry))
	}

	return result, batch.ErrOrNil()
}

// decryptFile returns the file result and, separately, the mismatch
// error when the checksum did not match.
func decryptFile(info files.FileInfo, opts DecryptOptions, cache *key.Cache) (DecryptedFile, error) {
	df := DecryptedFile{FileResult: FileResult{Input: info.Input, Output: info.Output, Size: info.Size}}

	data, err := files.ReadInput(info.Input)
	if err != nil {
		df.Err = err
		return df, nil
	}

	o, err := open(data, opts.Key, cache)
	if err != nil {
		df.Err = kerrors.ForPath(err, info.Input)
		return df, nil
	}
	defer utils.Zero(o.plain)

	df.Version = o.header.Version.String()
	var mismatch error
	if !o.matches() {
		df.Mismatch = true
		mismatch = mismatchError(info.Input, o)
	}
	if opts.DryRun {
		return df, mismatch
	}

	df.Err = files.WriteOutput(info.Output, opts.Overwrite, func(w io.Writer) error {
		_, err := w.Write(o.plain)
		return err
	})
	if df.Err != nil || df.Mismatch || !opts.DeleteInput {
		return df, mismatch
	}

	if df.Err = files.Remove(info.Input); df.Err == nil {
		df.Deleted = true
	}
	return df, mismatch
}
