package key

import (
	"fmt"
	"io"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/endec/internal/errors"
	"github.com/PolarWolf314/endec/internal/utils"
)

// SourceKind says where a key comes from.
type SourceKind int

const (
	// SourceAsk prompts on the terminal, twice when encrypting.
	SourceAsk SourceKind = iota
	// SourceAskOnce prompts on the terminal once.
	SourceAskOnce
	// SourcePass uses the literal value.
	SourcePass
	// SourceEnv reads an environment variable.
	SourceEnv
	// SourceFile reads a file.
	SourceFile
	// SourcePipe reads the first line of standard input.
	SourcePipe
)

// Source describes how to obtain a key, e.g. "env:ENDEC_KEY".
type Source struct {
	Kind  SourceKind
	Value string
}

var (
	stdin            io.Reader = os.Stdin
	promptPassphrase           = utils.PromptPassphrase
)

// ParseSource parses one of: ask, ask-once, pipe, pass:<key>, env:<var>,
// file:<path>.
func ParseSource(s string) (Source, error) {
	switch s {
	case "", "ask":
		return Source{Kind: SourceAsk}, nil
	case "ask-once":
		return Source{Kind: SourceAskOnce}, nil
	case "pipe":
		return Source{Kind: SourcePipe}, nil
	}

	prefix, value, ok := strings.Cut(s, ":")
	if !ok {
		return Source{}, kerrors.Wrap(kerrors.ErrKey, kerrors.ErrKeySource, fmt.Sprintf("unknown key source %q", s)).
			WithDetail("expected ask, ask-once, pipe, pass:<key>, env:<var> or file:<path>")
	}
	switch prefix {
	case "pass":
		return Source{Kind: SourcePass, Value: value}, nil
	case "env":
		return Source{Kind: SourceEnv, Value: strings.TrimSpace(value)}, nil
	case "file":
		return Source{Kind: SourceFile, Value: strings.TrimSpace(value)}, nil
	}
	return Source{}, kerrors.Wrap(kerrors.ErrKey, kerrors.ErrKeySource, fmt.Sprintf("unknown key source %q", prefix+":")).
		WithDetail("expected ask, ask-once, pipe, pass:<key>, env:<var> or file:<path>")
}

// Obtain reads the key. With confirm set, SourceAsk prompts a second time
// and fails when the two entries differ.
func (s Source) Obtain(confirm bool) (Key, error) {
	raw, err := s.read(confirm)
	if err != nil {
		return Key{}, err
	}
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return Key{}, kerrors.Wrap(kerrors.ErrKey, kerrors.ErrEmptyKey, "the key is empty").
			WithDetail("key source: %s", s)
	}
	return New(secret), nil
}

func (s Source) read(confirm bool) (string, error) {
	switch s.Kind {
	case SourcePass:
		return s.Value, nil

	case SourceEnv:
		value, ok := os.LookupEnv(s.Value)
		if !ok {
			return "", kerrors.Wrap(kerrors.ErrKey, kerrors.ErrKeySource,
				fmt.Sprintf("environment variable %s is not set", s.Value))
		}
		return value, nil

	case SourceFile:
		data, err := os.ReadFile(s.Value)
		if err != nil {
			return "", kerrors.Wrap(kerrors.ErrKey, err, "could not read key file").WithPaths(s.Value)
		}
		return string(data), nil

	case SourcePipe:
		line, err := utils.ReadFirstLine(stdin)
		if err != nil {
			return "", kerrors.Wrap(kerrors.ErrKey, err, "could not read key from standard input")
		}
		return line, nil

	case SourceAsk, SourceAskOnce:
		first, err := promptPassphrase("Key: ")
		if err != nil {
			return "", kerrors.Wrap(kerrors.ErrKey, err, "could not read key from terminal")
		}
		defer utils.Zero(first)
		if s.Kind == SourceAskOnce || !confirm {
			return string(first), nil
		}
		second, err := promptPassphrase("Repeat key: ")
		if err != nil {
			return "", kerrors.Wrap(kerrors.ErrKey, err, "could not read key from terminal")
		}
		defer utils.Zero(second)
		if !utils.ConstantTimeEqual(first, second) {
			return "", kerrors.Wrap(kerrors.ErrKey, kerrors.ErrKeyMismatch, "the keys did not match")
		}
		return string(first), nil
	}
	return "", kerrors.Wrap(kerrors.ErrKey, kerrors.ErrKeySource, fmt.Sprintf("unknown key source kind %d", int(s.Kind)))
}

// String describes the source without revealing a literal key.
func (s Source) String() string {
	switch s.Kind {
	case SourceAsk:
		return "ask"
	case SourceAskOnce:
		return "ask-once"
	case SourcePass:
		return "pass:***"
	case SourceEnv:
		return "env:" + s.Value
	case SourceFile:
		return "file:" + s.Value
	case SourcePipe:
		return "pipe"
	default:
		return "unknown"
	}
}
