package configs

import (
	"os"
	"path/filepath"

	"github.com/PolarWolf314/endec/internal/utils"
)

type Settings struct {
	// ConfigPath holds config.toml.
	ConfigPath string
	// DataPath holds the audit log.
	DataPath string
	Username string
	Hostname string
}

var UserSettings *Settings

func init() {
	UserSettings = defaultSettings()
}

func defaultSettings() *Settings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(homeDir, ".config")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}
	hostname, err := utils.GetHostname()
	if err != nil {
		hostname = "unknown"
	}

	return &Settings{
		ConfigPath: filepath.Join(configDir, "endec"),
		DataPath:   filepath.Join(dataDir, "endec"),
		Username:   username,
		Hostname:   hostname,
	}
}
