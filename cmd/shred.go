package cmd

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/shred"
	"github.com/PolarWolf314/endec/internal/ui"
	"github.com/PolarWolf314/endec/internal/utils"
	"github.com/PolarWolf314/endec/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	shredPasses  int
	shredRenames int
	shredKeep    bool
	shredDryRun  bool
)

func init() {
	shredCmd.Flags().IntVarP(&shredPasses, "passes", "n", 0, "number of overwrite passes (default from config)")
	shredCmd.Flags().IntVar(&shredRenames, "renames", 0, "number of renames before removal (default from config)")
	shredCmd.Flags().BoolVar(&shredKeep, "keep", false, "overwrite but do not rename or remove")
	shredCmd.Flags().BoolVar(&shredDryRun, "dry-run", false, "list the files without touching them")
}

// resetShredCommandState resets the shred command's global state for testing.
func resetShredCommandState() {
	shredPasses = 0
	shredRenames = 0
	shredKeep = false
	shredDryRun = false
}

var shredCmd = &cobra.Command{
	Use:   "shred FILE|DIR|GLOB...",
	Short: "Overwrite and remove files",
	Long: `Overwrites files several times, renames them a few times and removes them.

This is best effort: journaling filesystems, SSDs and backups may keep
copies of the original content.

Examples:
  endec shred notes.txt
  endec shred --passes 3 --dry-run tmp/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShred,
}

func runShred(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting shred command")

	config, err := loadConfig()
	if err != nil {
		return err
	}

	opts := shred.Options{
		OverwriteCount: config.Shred.OverwriteCount,
		RenameCount:    config.Shred.RenameCount,
		Keep:           shredKeep,
	}
	if cmd.Flags().Changed("passes") {
		if shredPasses < 1 {
			return kerrors.New(kerrors.ErrConfig, "--passes must be at least 1")
		}
		opts.OverwriteCount = shredPasses
	}
	if cmd.Flags().Changed("renames") {
		if shredRenames < 0 {
			return kerrors.New(kerrors.ErrConfig, "--renames may not be negative")
		}
		opts.RenameCount = shredRenames
	}
	Logger.Debugf("Shred options: passes=%d, renames=%d, keep=%t", opts.OverwriteCount, opts.RenameCount, opts.Keep)

	spinner, cleanup := startSpinner("Shredding files...")
	defer cleanup()

	result, err := workflows.Shred(cmd.Context(), workflows.ShredOptions{
		Inputs: args,
		Shred:  opts,
		DryRun: shredDryRun,
		Audit:  config.Audit.Enabled,
	})
	if result == nil {
		return err
	}

	pauseSpinner(spinner, func() { printWarnings(result.Warnings) })
	spinner.FinalMSG = formatShredResult(result)
	return err
}

func formatShredResult(result *workflows.ShredResult) string {
	var (
		b    strings.Builder
		done []string
	)
	for _, f := range result.Files {
		if f.Err != nil {
			b.WriteString(ui.ErrorLine(kerrors.Describe(f.Err, IsVerbose())) + "\n")
			continue
		}
		done = append(done, f.Input)
	}

	switch {
	case result.DryRun:
		b.WriteString(ui.Warning.Sprint("[dry-run]"))
		fmt.Fprintf(&b, " Would shred %d %s:", len(done), plural(len(done), "file", "files"))
		b.WriteString(utils.FormatPaths(done))
	case len(done) > 0:
		b.WriteString(ui.SuccessLine(fmt.Sprintf("Shredded %d %s:", len(done), plural(len(done), "file", "files"))))
		b.WriteString(utils.FormatPaths(done))
	}
	return b.String()
}
