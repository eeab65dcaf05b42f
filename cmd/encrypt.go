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
	encryptKeySource   string
	encryptOutputDir   string
	encryptExtension   string
	encryptOverwrite   bool
	encryptDeleteInput bool
	encryptDryRun      bool
)

func init() {
	encryptCmd.Flags().StringVarP(&encryptKeySource, "key", "k", "", "key source: ask, ask-once, pipe, pass:<key>, env:<var> or file:<path>")
	encryptCmd.Flags().StringVarP(&encryptOutputDir, "output-dir", "o", "", "write encrypted files to this directory")
	encryptCmd.Flags().StringVarP(&encryptExtension, "extension", "e", "", "extension appended to encrypted files")
	encryptCmd.Flags().BoolVarP(&encryptOverwrite, "overwrite", "f", false, "replace existing output files")
	encryptCmd.Flags().BoolVar(&encryptDeleteInput, "delete-input", false, "shred each input after it was encrypted")
	encryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "show what would be encrypted without writing files")
}

// resetEncryptCommandState resets the encrypt command's global state for testing.
func resetEncryptCommandState() {
	encryptKeySource = ""
	encryptOutputDir = ""
	encryptExtension = ""
	encryptOverwrite = false
	encryptDeleteInput = false
	encryptDryRun = false
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt FILE|DIR|GLOB...",
	Short: "Encrypt files with a passphrase",
	Long: `Encrypts files with a passphrase.

Each input is written to a new file with the extension appended (".enc" by
default). Directories are searched recursively and glob patterns such as
"docs/**/*.txt" are expanded. Before anything is written, every input must
exist and no output may exist yet, unless --overwrite is given.

All files of one run share a random salt, so the passphrase is stretched
only once.

Examples:
  endec encrypt notes.txt                    # Prompts for the key twice
  endec encrypt -k env:ENDEC_KEY docs/       # Key from an environment variable
  endec encrypt --delete-input secrets/*.txt # Shred the originals afterwards
  endec encrypt --dry-run "**/*.pdf"         # Preview without writing`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncrypt,
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting encrypt command")

	config, err := loadConfig()
	if err != nil {
		return err
	}

	opts := workflows.EncryptOptions{
		Inputs:      args,
		Extension:   stringSetting(cmd, "extension", encryptExtension, config.Encrypt.Extension),
		OutputDir:   stringSetting(cmd, "output-dir", encryptOutputDir, config.Encrypt.OutputDir),
		Overwrite:   boolSetting(cmd, "overwrite", encryptOverwrite, config.Encrypt.Overwrite),
		DeleteInput: boolSetting(cmd, "delete-input", encryptDeleteInput, config.Encrypt.DeleteInput),
		DryRun:      encryptDryRun,
		Shred: shred.Options{
			OverwriteCount: config.Shred.OverwriteCount,
			RenameCount:    config.Shred.RenameCount,
		},
		Audit: config.Audit.Enabled,
	}
	Logger.Debugf("Options: extension=%s, output-dir=%q, overwrite=%t, delete-input=%t, dry-run=%t",
		opts.Extension, opts.OutputDir, opts.Overwrite, opts.DeleteInput, opts.DryRun)

	k, err := obtainKey(encryptKeySource, config.Key.Source, true)
	if err != nil {
		return err
	}
	defer k.Destroy()
	opts.Key = k

	spinner, cleanup := startSpinner("Encrypting files...")
	defer cleanup()

	result, err := workflows.Encrypt(cmd.Context(), opts)
	if result == nil {
		return err
	}

	pauseSpinner(spinner, func() { printWarnings(result.Warnings) })
	Logger.Infof("Encrypted with %s using %s", result.Version, result.Salt)
	spinner.FinalMSG = formatEncryptResult(result)
	return err
}

func formatEncryptResult(result *workflows.EncryptResult) string {
	var b strings.Builder

	if result.DryRun {
		b.WriteString(ui.Warning.Sprint("[dry-run]"))
		fmt.Fprintf(&b, " Would encrypt %d %s with format version %s:\n",
			len(result.Files), plural(len(result.Files), "file", "files"), ui.Highlight.Sprint(result.Version))
		for _, f := range result.Files {
			fmt.Fprintf(&b, "    %s → %s %s\n", ui.Path.Sprint(f.Input), ui.Path.Sprint(f.Output), ui.Muted.Sprint(utils.HumanSize(f.Size)))
		}
		b.WriteString(ui.HintLine("Run without " + ui.Flag.Sprint("--dry-run") + " to encrypt"))
		return b.String()
	}

	var written, failed []workflows.FileResult
	deleted := 0
	for _, f := range result.Files {
		if f.Err != nil {
			failed = append(failed, f)
			continue
		}
		written = append(written, f)
		if f.Deleted {
			deleted++
		}
	}

	if len(written) > 0 {
		outputs := make([]string, len(written))
		for i, f := range written {
			outputs[i] = f.Output
		}
		b.WriteString(ui.SuccessLine(fmt.Sprintf("Encrypted %d %s with format version %s:",
			len(written), plural(len(written), "file", "files"), ui.Highlight.Sprint(result.Version))))
		b.WriteString(utils.FormatPaths(outputs))
	}
	if deleted > 0 {
		b.WriteString(ui.HintLine(fmt.Sprintf("Shredded %d original %s\n", deleted, plural(deleted, "file", "files"))))
	}
	for _, f := range failed {
		b.WriteString(ui.ErrorLine(kerrors.Describe(f.Err, IsVerbose())))
		b.WriteString("\n")
	}
	return b.String()
}
