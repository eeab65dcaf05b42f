package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/endec/internal/key"
	"github.com/PolarWolf314/endec/internal/ui"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// startSpinner creates and starts a spinner with the given message unless
// verbose, debug or quiet output is requested. The returned cleanup stops
// the spinner and prints FinalMSG, which needs no trailing newline.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	animate := !verbose && !debug && !quiet
	if animate {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if animate {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" && !quiet {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pauseSpinner stops s while fn runs, for prompts and warnings.
func pauseSpinner(s *spinner.Spinner, fn func()) {
	active := s.Active()
	if active {
		s.Stop()
	}
	fn()
	if active {
		s.Start()
	}
}

// obtainKey reads the key from the --key source, or from the configured
// source when the flag is unset. With confirm, an interactive source asks
// twice.
func obtainKey(flagSource, configSource string, confirm bool) (key.Key, error) {
	spec := configSource
	if flagSource != "" {
		spec = flagSource
	}
	source, err := key.ParseSource(spec)
	if err != nil {
		return key.Key{}, err
	}
	Logger.Debugf("Reading key from %s", source)
	return source.Obtain(confirm)
}

// boolSetting returns the flag value when the flag was given and the
// configured value otherwise.
func boolSetting(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

// stringSetting is boolSetting for string flags.
func stringSetting(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

// printWarnings reports workflow warnings.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		Logger.Warnf("%s", w)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
