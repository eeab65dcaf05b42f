// Package configs manages the endec user configuration.
//
// Configuration is stored in TOML format at $XDG_CONFIG_HOME/endec/config.toml
// (os.UserConfigDir). A missing file means defaults; keys missing from the
// file keep their default values and unknown keys are rejected:
//
//	[encrypt]
//	extension = ".enc"
//	output_dir = ""
//	overwrite = false
//	delete_input = false
//
//	[decrypt]
//	output_dir = ""
//	overwrite = false
//	delete_input = false
//
//	[key]
//	source = "ask"
//
//	[shred]
//	overwrite_count = 10
//	rename_count = 10
//
//	[audit]
//	enabled = true
//
// Command-line flags take precedence over the file.
//
// # Settings
//
// UserSettings is initialized at startup with the config and data
// directories and the current user and host names. Tests may point the
// directories elsewhere.
package configs
