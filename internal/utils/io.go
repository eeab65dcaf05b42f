package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ReadFirstLine reads up to the first newline of r, without the newline.
// A stream ending without a newline yields what was read.
func ReadFirstLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	if line == "" && errors.Is(err, io.EOF) {
		return "", fmt.Errorf("stdin is empty")
	}
	line = line[:len(line)-trailingNewline(line)]
	return line, nil
}

func trailingNewline(s string) int {
	switch {
	case len(s) >= 2 && s[len(s)-2:] == "\r\n":
		return 2
	case len(s) >= 1 && s[len(s)-1] == '\n':
		return 1
	}
	return 0
}
