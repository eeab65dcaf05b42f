package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/PolarWolf314/endec/internal/configs"
	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configShowJSON      bool
	configInitForce     bool
	configInitKeySource string
	configInitExtension string
	configInitNoAudit   bool

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the endec configuration",
		Long: `Provides commands for managing the user configuration file.

The configuration holds defaults for the encrypt, decrypt and shred
commands. Flags given on the command line always win.

Examples:
  # Write the default configuration
  endec config init

  # Always read the key from an environment variable
  endec config init --force --key-source env:ENDEC_KEY

  # Show the effective configuration
  endec config show`,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the location of the configuration file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(effectiveConfigPath())
		},
	}
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing configuration file")
	configInitCmd.Flags().StringVar(&configInitKeySource, "key-source", "", "default key source, e.g. env:ENDEC_KEY")
	configInitCmd.Flags().StringVar(&configInitExtension, "extension", "", "extension of encrypted files")
	configInitCmd.Flags().BoolVar(&configInitNoAudit, "no-audit", false, "disable the audit log")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configPathCmd)
}

// resetConfigState resets all config command global variables to their default values for testing.
func resetConfigState() {
	configShowJSON = false
	configInitForce = false
	configInitKeySource = ""
	configInitExtension = ""
	configInitNoAudit = false
}

func effectiveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return configs.Path()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config show command")

	config, err := loadConfig()
	if err != nil {
		return err
	}

	if configShowJSON {
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to marshal config to JSON: %v", err)
		}
		fmt.Println(string(data))
		return nil
	}

	path := effectiveConfigPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("# %s does not exist, showing defaults\n", path)
	} else {
		fmt.Printf("# %s\n", path)
	}
	return toml.NewEncoder(os.Stdout).Encode(config)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config init command")

	path := effectiveConfigPath()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return kerrors.Wrap(kerrors.ErrConfig, kerrors.ErrOutputExists, "configuration file already exists").
			WithPaths(path).
			WithDetail("use --force to replace it")
	}

	config := configs.Default()
	if configInitKeySource != "" {
		config.Key.Source = configInitKeySource
	}
	if configInitExtension != "" {
		config.Encrypt.Extension = configInitExtension
	}
	if configInitNoAudit {
		config.Audit.Enabled = false
	}

	Logger.Debugf("Writing config to %s", path)
	if err := configs.Save(path, config); err != nil {
		return err
	}

	fmt.Println(ui.SuccessLine("Configuration written to " + ui.Path.Sprint(path)))
	fmt.Println(ui.HintLine("Run " + ui.Code.Sprint("endec config show") + " to review it"))
	return nil
}
