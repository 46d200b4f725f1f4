package models

import (
	"fmt"
	"path/filepath"
)

// ConfigError reports mutually exclusive or length-mismatched arguments.
// It is surfaced immediately and never retried.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Key, e.Reason)
}

// FormatError reports a file extension with no registered decoder.
type FormatError struct {
	Ext string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q", e.Ext)
}

// DecodeError reports a file that could not be decoded. Attempts records
// how many header-skip counts were tried for delimited text files.
type DecodeError struct {
	Path     string
	Attempts int
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("could not import %q after %d header-skip attempts: %v", e.Path, e.Attempts, e.Err)
	}
	return fmt.Sprintf("could not import %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TokenError reports a filename whose stem has no token at the requested
// position. It aborts the whole ordering; there is no partial result.
type TokenError struct {
	Path     string
	Position int
	Tokens   int
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("filename %q splits into %d tokens, position %d is out of range",
		filepath.Base(e.Path), e.Tokens, e.Position)
}
