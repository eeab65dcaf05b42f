// Package logger provides leveled logging for endec commands.
//
// Output is prefixed with a colored level tag. Informational and debug
// messages go to stdout, warnings and errors to stderr.
//
// # Verbosity Levels
//
// Logging behavior is controlled by three flags:
//
//   - --verbose: Shows info messages and detailed errors
//   - --debug: Shows everything, including debug details
//   - --quiet: Hides info messages and ordinary warnings
//
// Without flags, warnings are shown and info messages are hidden.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown unless --quiet
//	Logger.WarnfAlways()     // Always shown (weak keys, checksum mismatches)
//	Logger.Errorf()          // Shown with --verbose or --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Encrypting %d files", count)
//
// The root command creates the logger in its PersistentPreRun. Workflows
// do not log; commands report the warnings they return.
package logger
