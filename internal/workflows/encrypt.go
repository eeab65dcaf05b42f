package workflows

import (
	"context"
	"fmt"
	"io"

	"github.com/PolarWolf314/endec/internal/audit"
	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/files"
	"github.com/PolarWolf314/endec/internal/header"
	"github.com/PolarWolf314/endec/internal/key"
	"github.com/PolarWolf314/endec/internal/shred"
	"github.com/PolarWolf314/endec/internal/strategy"
	"github.com/PolarWolf314/endec/internal/utils"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Inputs are file paths, directories or glob patterns.
	Inputs []string

	// Key is the passphrase every file is encrypted with.
	Key key.Key

	// Extension is appended to each input to name its output. Empty means
	// files.DefaultExtension.
	Extension string

	// OutputDir places outputs in this directory instead of beside the inputs.
	OutputDir string

	// Overwrite allows replacing existing output files.
	Overwrite bool

	// DeleteInput shreds each input after its output was written.
	DeleteInput bool

	// Shred controls how inputs are shredded. The zero value means
	// shred.DefaultOptions.
	Shred shred.Options

	// DryRun runs every step except writing and deleting files.
	DryRun bool

	// Audit records the operation in the audit log.
	Audit bool

	// Salt replaces the random batch salt. Only for reproducible output.
	Salt *key.Salt
}

// FileResult is the outcome for one file of a batch.
type FileResult struct {
	Input  string
	Output string
	Size   int64

	// Deleted is set when the input was removed afterwards.
	Deleted bool

	// Err is the failure for this file, if any.
	Err error
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Files holds one result per input, in processing order.
	Files []FileResult

	// Version is the format version the files were written with.
	Version string

	// Salt is the salt shared by the whole batch.
	Salt key.Salt

	// Warnings are non-fatal problems the caller should show.
	Warnings []string

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool
}

// Encrypt encrypts every input with the current strategy.
//
// All inputs are checked before anything is written: a missing input or an
// existing output aborts the whole batch with ErrPreflight. The key is
// stretched once with a salt shared by the batch. Failures of single files
// are collected and returned as a *kerrors.BatchError once every file was
// attempted; the result is returned in that case too.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	ext := opts.Extension
	if ext == "" {
		ext = files.DefaultExtension
	}

	inputs, err := files.ResolveInputs(opts.Inputs, files.WithoutExtension(ext))
	if err != nil {
		return nil, err
	}
	infos, err := files.Preflight(inputs, func(in string) string {
		return files.EncryptedPath(in, ext, opts.OutputDir)
	}, opts.Overwrite)
	if err != nil {
		return nil, err
	}

	if opts.Key.IsEmpty() {
		return nil, kerrors.Wrap(kerrors.ErrKey, kerrors.ErrEmptyKey, "cannot encrypt with an empty key")
	}

	st := strategy.Current()
	result := &EncryptResult{
		Version: st.Version().String(),
		DryRun:  opts.DryRun,
	}
	if opts.Key.IsWeak() {
		s := opts.Key.Strength()
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("The key is weak (score %d of 4), it could be cracked in %s", s.Score, s.CrackTime))
	}

	if opts.Salt != nil {
		result.Salt = *opts.Salt
	} else if result.Salt, err = key.NewSalt(); err != nil {
		return nil, err
	}

	sk, err := key.Stretch(opts.Key, result.Salt, st)
	if err != nil {
		return nil, err
	}
	defer sk.Destroy()

	shredOpts := shredOptions(opts.Shred)
	batch := &kerrors.BatchError{Op: "encrypt"}
	var written []string

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fr := FileResult{Input: info.Input, Output: info.Output, Size: info.Size}
		if info.IsLarge() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s is %s and is read into memory at once", info.Input, utils.HumanSize(info.Size)))
		}

		fr.Err = encryptFile(info, sk, result.Salt, st, opts, &result.Warnings)
		if fr.Err == nil && !opts.DryRun {
			written = append(written, info.Output)
			if opts.DeleteInput {
				if err := shred.File(info.Input, shredOpts); err != nil {
					fr.Err = err
				} else {
					fr.Deleted = true
				}
			}
		}

		batch.Add(fr.Err)
		result.Files = append(result.Files, fr)
	}

	if opts.Audit && !opts.DryRun {
		entry := audit.NewEntry("encrypt")
		entry.Files = written
		entry.Version = result.Version
		entry.Failures = len(batch.Failures)
		result.Warnings = appendAuditWarning(result.Warnings, audit.Log(entry))
	}

	return result, batch.ErrOrNil()
}

func encryptFile(info files.FileInfo, sk *key.StretchKey, salt key.Salt, st strategy.Strategy, opts EncryptOptions, warnings *[]string) error {
	plain, err := files.ReadInput(info.Input)
	if err != nil {
		return err
	}
	defer utils.Zero(plain)

	if header.LooksEncrypted(plain) {
		*warnings = append(*warnings, fmt.Sprintf("%s already looks encrypted", info.Input))
	}

	sealed, err := seal(plain, sk, salt, st)
	if err != nil {
		return kerrors.ForPath(err, info.Input)
	}
	if opts.DryRun {
		return nil
	}

	return files.WriteOutput(info.Output, opts.Overwrite, func(w io.Writer) error {
		_, err := w.Write(sealed)
		return err
	})
}

func shredOptions(opts shred.Options) shred.Options {
	if opts.OverwriteCount == 0 && opts.RenameCount == 0 {
		opts.OverwriteCount = shred.DefaultOptions.OverwriteCount
		opts.RenameCount = shred.DefaultOptions.RenameCount
	}
	return opts
}

func appendAuditWarning(warnings []string, err error) []string {
	if err == nil {
		return warnings
	}
	return append(warnings, fmt.Sprintf("Could not write audit log: %v", err))
}
