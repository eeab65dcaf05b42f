package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/PolarWolf314/endec/cmd"
	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/ui"
)

// Exit codes.
const (
	exitError    = 1
	exitMismatch = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.RootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, ui.ErrorLine(kerrors.Describe(err, cmd.IsVerbose())))
	if !cmd.IsVerbose() {
		var detailed interface{ Verbose() string }
		if errors.As(err, &detailed) && detailed.Verbose() != err.Error() {
			fmt.Fprintln(os.Stderr, ui.HintLine("Run with "+ui.Flag.Sprint("--verbose")+" for details"))
		}
	}

	var batch *kerrors.BatchError
	if errors.As(err, &batch) && batch.Mismatches() == len(batch.Failures) {
		os.Exit(exitMismatch)
	}
	os.Exit(exitError)
}
