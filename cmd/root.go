package cmd

import (
	"github.com/PolarWolf314/endec/internal/configs"
	logger "github.com/PolarWolf314/endec/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	quiet      bool
	configPath string
	Logger     logger.Logger

	RootCmd = &cobra.Command{
		Use:   "endec",
		Short: "endec - encrypt and decrypt files with a passphrase",
		Long: `endec encrypts files with a passphrase and decrypts them again.

Every encrypted file starts with a short plain-text header naming the format
version it was written with, so files written by older releases can always
be decrypted by newer ones.

Usage:
  endec <command> [flags]

Available Commands:
  encrypt    Encrypt files
  decrypt    Decrypt files
  inspect    Show the header of encrypted files
  shred      Overwrite and remove files
  log        Show the history of operations
  config     Manage the configuration file
  version    Show version information

Run 'endec help <command>' for more details on a specific command.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Quiet:   quiet,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t, quiet=%t", cmd.Name(), verbose, debug, quiet)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path of the config file (default "+configs.Path()+")")

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(shredCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(versionCmd)
}

// IsVerbose reports whether errors should be shown with their details.
func IsVerbose() bool {
	return verbose || debug
}

// loadConfig loads the file named by --config, or the user config.
func loadConfig() (*configs.Config, error) {
	path := configPath
	if path == "" {
		path = configs.Path()
	}
	Logger.Debugf("Loading config from %s", path)
	return configs.Load(path)
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	quiet = false
	configPath = ""
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetShredCommandState()
	resetLogCommandState()
	resetConfigState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed marks so flag-over-config merging
// starts fresh.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
