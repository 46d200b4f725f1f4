package scan

import (
	"path/filepath"
	"strings"

	"microstack/internal/models"
)

// Stem strips the directory and extension from a path.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Tokenize splits the filename stem on the fixed delimiter set, space and
// underscore. Consecutive delimiters yield empty tokens, so positions stay
// aligned across filenames that share a naming scheme.
func Tokenize(path string) []string {
	stem := Stem(path)
	return strings.Split(strings.ReplaceAll(stem, " ", "_"), "_")
}

// Extract returns the stem token at position for an arbitrary path.
// Negative positions count from the end.
func Extract(path string, position int) (string, error) {
	toks := Tokenize(path)
	i := position
	if i < 0 {
		i += len(toks)
	}
	if i < 0 || i >= len(toks) {
		return "", &models.TokenError{Path: path, Position: position, Tokens: len(toks)}
	}
	return toks[i], nil
}
