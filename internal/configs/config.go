package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/key"
)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.toml"

// Config is the user configuration.
type Config struct {
	Encrypt EncryptConfig `toml:"encrypt" json:"encrypt"`
	Decrypt DecryptConfig `toml:"decrypt" json:"decrypt"`
	Key     KeyConfig     `toml:"key" json:"key"`
	Shred   ShredConfig   `toml:"shred" json:"shred"`
	Audit   AuditConfig   `toml:"audit" json:"audit"`
}

type EncryptConfig struct {
	Extension   string `toml:"extension" json:"extension"`
	OutputDir   string `toml:"output_dir" json:"output_dir"`
	Overwrite   bool   `toml:"overwrite" json:"overwrite"`
	DeleteInput bool   `toml:"delete_input" json:"delete_input"`
}

type DecryptConfig struct {
	OutputDir   string `toml:"output_dir" json:"output_dir"`
	Overwrite   bool   `toml:"overwrite" json:"overwrite"`
	DeleteInput bool   `toml:"delete_input" json:"delete_input"`
}

type KeyConfig struct {
	// Source is a key source such as "ask", "env:ENDEC_KEY" or "file:~/.key".
	Source string `toml:"source" json:"source"`
}

type ShredConfig struct {
	OverwriteCount int `toml:"overwrite_count" json:"overwrite_count"`
	RenameCount    int `toml:"rename_count" json:"rename_count"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Encrypt: EncryptConfig{Extension: ".enc"},
		Key:     KeyConfig{Source: "ask"},
		Shred:   ShredConfig{OverwriteCount: 10, RenameCount: 10},
		Audit:   AuditConfig{Enabled: true},
	}
}

// Path returns the location of the user configuration file.
func Path() string {
	return filepath.Join(UserSettings.ConfigPath, FileName)
}

// Load reads the configuration at path on top of the defaults. A missing
// file yields the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	meta, err := LoadTOML(path, config)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrConfig, err, "failed to load config").WithPaths(path)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, kerrors.New(kerrors.ErrConfig, "unknown config keys").
			WithPaths(path).
			WithDetail("%s", strings.Join(keys, ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadUserConfig loads the configuration from Path.
func LoadUserConfig() (*Config, error) {
	return Load(Path())
}

// Save writes config to path.
func Save(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(path, config); err != nil {
		return kerrors.Wrap(kerrors.ErrConfig, err, "failed to save config").WithPaths(path)
	}
	return nil
}

// Validate checks the values a user may have edited.
func (c *Config) Validate() error {
	var problems []string

	if !strings.HasPrefix(c.Encrypt.Extension, ".") || len(c.Encrypt.Extension) < 2 {
		problems = append(problems, fmt.Sprintf("encrypt.extension %q must start with '.'", c.Encrypt.Extension))
	}
	if strings.ContainsAny(c.Encrypt.Extension, `/\`) {
		problems = append(problems, fmt.Sprintf("encrypt.extension %q may not contain path separators", c.Encrypt.Extension))
	}
	if _, err := key.ParseSource(c.Key.Source); err != nil {
		problems = append(problems, fmt.Sprintf("key.source: %v", err))
	}
	if c.Shred.OverwriteCount < 1 {
		problems = append(problems, "shred.overwrite_count must be at least 1")
	}
	if c.Shred.RenameCount < 0 {
		problems = append(problems, "shred.rename_count may not be negative")
	}

	if len(problems) > 0 {
		return kerrors.New(kerrors.ErrConfig, "invalid configuration").
			WithDetail("%s", strings.Join(problems, "; "))
	}
	return nil
}
