package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a categorized failure that renders at two verbosity levels.
type Error struct {
	// Kind is one of the category sentinels (ErrIO, ErrFormat, ...).
	Kind error

	// Msg is the terse, user-facing message. Defaults to Kind's text.
	Msg string

	// Detail is only shown in verbose output.
	Detail string

	// Paths lists the files the failure applies to.
	Paths []string

	// Err is the underlying cause, if any.
	Err error
}

// New creates an *Error of the given kind.
func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap creates an *Error of the given kind around cause.
func Wrap(kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// WithDetail sets the verbose-only detail and returns e.
func (e *Error) WithDetail(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithPaths sets the paths the failure applies to and returns e.
func (e *Error) WithPaths(paths ...string) *Error {
	e.Paths = paths
	return e
}

// ForPath attributes err to path. An *Error without paths gets a copy with
// path set; any other error is wrapped as ErrIO.
func ForPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if len(e.Paths) > 0 {
			return err
		}
		c := *e
		c.Paths = []string{path}
		return &c
	}
	return Wrap(ErrIO, err, "").WithPaths(path)
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if len(e.Paths) > 0 {
		msg += ": " + strings.Join(e.Paths, ", ")
	}
	return msg
}

// Verbose returns the terse message followed by the detail and the cause.
func (e *Error) Verbose() string {
	var b strings.Builder
	b.WriteString(e.Error())
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(Describe(e.Err, true))
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// BatchError collects the per-file failures of a batch operation.
type BatchError struct {
	// Op is the operation name, e.g. "encrypt".
	Op string

	// Failures holds one error per failed file, in processing order.
	Failures []error
}

// Add records a failure. Nil errors are ignored.
func (b *BatchError) Add(err error) {
	if err != nil {
		b.Failures = append(b.Failures, err)
	}
}

// ErrOrNil returns b when it holds failures and nil otherwise.
func (b *BatchError) ErrOrNil() error {
	if b == nil || len(b.Failures) == 0 {
		return nil
	}
	return b
}

// Mismatches counts the failures that are checksum mismatches.
func (b *BatchError) Mismatches() int {
	n := 0
	for _, err := range b.Failures {
		if errors.Is(err, ErrIntegrity) {
			n++
		}
	}
	return n
}

func (b *BatchError) Error() string {
	mismatches := b.Mismatches()
	others := len(b.Failures) - mismatches

	var parts []string
	if others > 0 {
		parts = append(parts, fmt.Sprintf("%s failed for %d %s", b.Op, others, plural(others, "file", "files")))
	}
	if mismatches > 0 {
		parts = append(parts, fmt.Sprintf("there %s %d %s whose checksums did not match",
			plural(mismatches, "was", "were"), mismatches, plural(mismatches, "file", "files")))
	}
	return strings.Join(parts, "; ")
}

// Verbose lists every failure on its own line.
func (b *BatchError) Verbose() string {
	var sb strings.Builder
	sb.WriteString(b.Error())
	for _, err := range b.Failures {
		sb.WriteString("\n  - ")
		sb.WriteString(Describe(err, true))
	}
	return sb.String()
}

func (b *BatchError) Unwrap() []error {
	return b.Failures
}

// Describe renders err tersely, or verbosely when verbose is set and err
// supports it.
func Describe(err error, verbose bool) string {
	if err == nil {
		return ""
	}
	if !verbose {
		return err.Error()
	}
	var v interface{ Verbose() string }
	if errors.As(err, &v) {
		return v.Verbose()
	}
	return err.Error()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
