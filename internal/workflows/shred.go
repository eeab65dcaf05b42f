package workflows

import (
	"context"

	"github.com/PolarWolf314/endec/internal/audit"
	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/files"
	"github.com/PolarWolf314/endec/internal/shred"
)

// ShredOptions configures the shred workflow.
type ShredOptions struct {
	// Inputs are file paths, directories or glob patterns.
	Inputs []string

	// Shred controls how files are shredded. The zero value means
	// shred.DefaultOptions.
	Shred shred.Options

	// DryRun lists the files without touching them.
	DryRun bool

	// Audit records the operation in the audit log.
	Audit bool
}

// ShredResult contains the outcome of a shred operation.
type ShredResult struct {
	Files    []FileResult
	Warnings []string
	DryRun   bool
}

// Shred overwrites and removes every input. All inputs must exist before
// any is touched.
func Shred(ctx context.Context, opts ShredOptions) (*ShredResult, error) {
	inputs, err := files.ResolveInputs(opts.Inputs, nil)
	if err != nil {
		return nil, err
	}
	infos, err := files.CheckInputs(inputs)
	if err != nil {
		return nil, err
	}

	shredOpts := shredOptions(opts.Shred)
	result := &ShredResult{DryRun: opts.DryRun}
	batch := &kerrors.BatchError{Op: "shred"}
	var shredded []string

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fr := FileResult{Input: info.Input, Size: info.Size}
		if !opts.DryRun {
			if fr.Err = shred.File(info.Input, shredOpts); fr.Err == nil {
				fr.Deleted = !shredOpts.Keep
				shredded = append(shredded, info.Input)
			}
		}
		batch.Add(fr.Err)
		result.Files = append(result.Files, fr)
	}

	if opts.Audit && !opts.DryRun {
		entry := audit.NewEntry("shred")
		entry.Files = shredded
		entry.Failures = len(batch.Failures)
		result.Warnings = appendAuditWarning(result.Warnings, audit.Log(entry))
	}

	return result, batch.ErrOrNil()
}
