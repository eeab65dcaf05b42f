package workflows

import (
	"bufio"
	"context"
	"os"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/files"
	"github.com/PolarWolf314/endec/internal/header"
	"github.com/PolarWolf314/endec/internal/strategy"
)

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	// Inputs are file paths, directories or glob patterns.
	Inputs []string
}

// InspectedFile describes the header of one file.
type InspectedFile struct {
	Path string

	// Header is the parsed header. Only valid when Err is nil.
	Header header.Header

	// Strategy is the strategy the header version resolves to.
	Strategy strategy.Strategy

	// PayloadSize is the number of ciphertext bytes after the header.
	PayloadSize int64

	Err error
}

// InspectResult contains the outcome of an inspect operation.
type InspectResult struct {
	Files []InspectedFile
}

// Inspect reads only the header of each input. No key is needed.
//
// Files that cannot be read or parsed are reported in their InspectedFile
// and, together, in the returned *kerrors.BatchError.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	inputs, err := files.ResolveInputs(opts.Inputs, nil)
	if err != nil {
		return nil, err
	}
	infos, err := files.CheckInputs(inputs)
	if err != nil {
		return nil, err
	}

	result := &InspectResult{}
	batch := &kerrors.BatchError{Op: "inspect"}
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		f := inspectFile(info)
		batch.Add(f.Err)
		result.Files = append(result.Files, f)
	}

	return result, batch.ErrOrNil()
}

func inspectFile(info files.FileInfo) InspectedFile {
	f := InspectedFile{Path: info.Input}

	fh, err := os.Open(info.Input)
	if err != nil {
		f.Err = kerrors.Wrap(kerrors.ErrIO, err, "could not open file").WithPaths(info.Input)
		return f
	}
	defer fh.Close()

	cr := &countingReader{br: bufio.NewReader(fh)}
	if f.Header, err = header.Read(cr); err != nil {
		f.Err = kerrors.ForPath(err, info.Input)
		return f
	}
	if f.Strategy, err = f.Header.Strategy(); err != nil {
		f.Err = kerrors.ForPath(err, info.Input)
		return f
	}
	f.PayloadSize = info.Size - cr.n
	return f
}

// countingReader counts the bytes handed out by br.
type countingReader struct {
	br *bufio.Reader
	n  int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.br.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.br.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}
