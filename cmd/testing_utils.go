// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// running the CLI and capturing its output.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/endec/internal/configs"
	"github.com/fatih/color"
)

// setupTestEnvironment points the config and data directories at a
// temporary directory, disables colors and returns a work directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	userDir := t.TempDir()

	originalSettings := configs.UserSettings
	originalNoColor := color.NoColor
	t.Cleanup(func() {
		configs.UserSettings = originalSettings
		color.NoColor = originalNoColor
		ResetGlobalState()
	})

	configs.UserSettings = &configs.Settings{
		ConfigPath: filepath.Join(userDir, "config"),
		DataPath:   filepath.Join(userDir, "data"),
		Username:   "testuser",
		Hostname:   "testhost",
	}
	color.NoColor = true

	return t.TempDir()
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// runCLI runs the root command with args from a clean state and returns
// everything it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	RootCmd.SetArgs(args)
	return captureOutput(RootCmd.Execute)
}
