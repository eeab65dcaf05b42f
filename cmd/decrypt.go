package cmd

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/ui"
	"github.com/PolarWolf314/endec/internal/utils"
	"github.com/PolarWolf314/endec/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	decryptKeySource   string
	decryptOutputDir   string
	decryptExtension   string
	decryptOverwrite   bool
	decryptDeleteInput bool
	decryptDryRun      bool
)

func init() {
	decryptCmd.Flags().StringVarP(&decryptKeySource, "key", "k", "", "key source: ask, ask-once, pipe, pass:<key>, env:<var> or file:<path>")
	decryptCmd.Flags().StringVarP(&decryptOutputDir, "output-dir", "o", "", "write decrypted files to this directory")
	decryptCmd.Flags().StringVarP(&decryptExtension, "extension", "e", "", "extension stripped from encrypted files")
	decryptCmd.Flags().BoolVarP(&decryptOverwrite, "overwrite", "f", false, "replace existing output files")
	decryptCmd.Flags().BoolVar(&decryptDeleteInput, "delete-input", false, "remove each encrypted file once it was decrypted and verified")
	decryptCmd.Flags().BoolVar(&decryptDryRun, "dry-run", false, "decrypt and verify without writing files")
}

// resetDecryptCommandState resets the decrypt command's global state for testing.
func resetDecryptCommandState() {
	decryptKeySource = ""
	decryptOutputDir = ""
	decryptExtension = ""
	decryptOverwrite = false
	decryptDeleteInput = false
	decryptDryRun = false
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt FILE|DIR|GLOB...",
	Short: "Decrypt files encrypted by endec",
	Long: `Decrypts files encrypted by any release of endec.

The extension (".enc" by default) is stripped from each input to name its
output; inputs without it get ".dec" appended instead. Directories are
searched recursively for files with the extension.

If a decrypted file does not match the checksum stored in its header, it
is still written, a warning is shown and decrypting carries on with the
next file. The command fails at the end if any file did not match.

Examples:
  endec decrypt notes.txt.enc
  endec decrypt -k file:~/.endec-key -o plain/ vault/
  endec decrypt --dry-run "backup/**/*.enc"  # Verify without writing`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting decrypt command")

	config, err := loadConfig()
	if err != nil {
		return err
	}

	opts := workflows.DecryptOptions{
		Inputs:      args,
		Extension:   stringSetting(cmd, "extension", decryptExtension, config.Encrypt.Extension),
		OutputDir:   stringSetting(cmd, "output-dir", decryptOutputDir, config.Decrypt.OutputDir),
		Overwrite:   boolSetting(cmd, "overwrite", decryptOverwrite, config.Decrypt.Overwrite),
		DeleteInput: boolSetting(cmd, "delete-input", decryptDeleteInput, config.Decrypt.DeleteInput),
		DryRun:      decryptDryRun,
		Audit:       config.Audit.Enabled,
	}
	Logger.Debugf("Options: extension=%s, output-dir=%q, overwrite=%t, delete-input=%t, dry-run=%t",
		opts.Extension, opts.OutputDir, opts.Overwrite, opts.DeleteInput, opts.DryRun)

	k, err := obtainKey(decryptKeySource, config.Key.Source, false)
	if err != nil {
		return err
	}
	defer k.Destroy()
	opts.Key = k

	spinner, cleanup := startSpinner("Decrypting files...")
	defer cleanup()

	result, err := workflows.Decrypt(cmd.Context(), opts)
	if result == nil {
		return err
	}

	pauseSpinner(spinner, func() { printWarnings(result.Warnings) })
	Logger.Infof("Stretched the key %d %s", result.Stretches, plural(result.Stretches, "time", "times"))
	spinner.FinalMSG = formatDecryptResult(result)
	return err
}

func formatDecryptResult(result *workflows.DecryptResult) string {
	var (
		b       strings.Builder
		written []string
		deleted int
	)

	for _, f := range result.Files {
		switch {
		case f.Err != nil:
			b.WriteString(ui.ErrorLine(kerrors.Describe(f.Err, IsVerbose())))
			b.WriteString("\n")
		case f.Mismatch:
			b.WriteString(ui.WarningLine("Checksum did not match for " + ui.Path.Sprint(f.Input) +
				", the key is probably wrong or the file is corrupt"))
			b.WriteString("\n")
			written = append(written, f.Output)
		default:
			written = append(written, f.Output)
		}
		if f.Deleted {
			deleted++
		}
	}

	if result.DryRun {
		b.WriteString(ui.Warning.Sprint("[dry-run]"))
		fmt.Fprintf(&b, " Would write %d %s:", len(written), plural(len(written), "file", "files"))
		b.WriteString(utils.FormatPaths(written))
		b.WriteString(ui.HintLine("Run without " + ui.Flag.Sprint("--dry-run") + " to decrypt"))
		return b.String()
	}

	if len(written) > 0 {
		b.WriteString(ui.SuccessLine(fmt.Sprintf("Decrypted %d %s:", len(written), plural(len(written), "file", "files"))))
		b.WriteString(utils.FormatPaths(written))
	}
	if deleted > 0 {
		b.WriteString(ui.HintLine(fmt.Sprintf("Removed %d encrypted %s", deleted, plural(deleted, "file", "files"))))
	}
	return b.String()
}
