// Package scan discovers the image files belonging to one logical stack
// and derives a deterministic order over them from filename-encoded
// tokens.
package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"microstack/internal/models"
)

// ImagePath is one discovered candidate file together with its tokenized
// filename stem. Immutable once discovered.
type ImagePath struct {
	Path   string
	tokens []string
}

func newImagePath(path string) ImagePath {
	return ImagePath{Path: path, tokens: Tokenize(path)}
}

// Stem returns the filename without directory and extension.
func (p ImagePath) Stem() string { return Stem(p.Path) }

// Tokens returns the stem split on the token delimiters.
func (p ImagePath) Tokens() []string {
	out := make([]string, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// Token returns the stem token at position, counting from the end when
// position is negative.
func (p ImagePath) Token(position int) (string, error) {
	i := position
	if i < 0 {
		i += len(p.tokens)
	}
	if i < 0 || i >= len(p.tokens) {
		return "", &models.TokenError{Path: p.Path, Position: position, Tokens: len(p.tokens)}
	}
	return p.tokens[i], nil
}

// Scan globs folder for candidate files, non-recursively. Either pattern
// or extension must be given; a pattern wins when both are set, and an
// extension without a leading dot gets one prepended. The result carries
// no ordering guarantee, that is Order's job.
func Scan(folder, pattern, extension string) ([]ImagePath, error) {
	if pattern == "" && extension == "" {
		return nil, &models.ConfigError{
			Key:    "fname_pattern",
			Reason: "either 'fname_pattern' or 'fname_extension' must be given",
		}
	}
	if pattern == "" {
		if !strings.HasPrefix(extension, ".") {
			extension = "." + extension
		}
		pattern = "*" + extension
	}

	matches, err := filepath.Glob(filepath.Join(folder, pattern))
	if err != nil {
		return nil, fmt.Errorf("globbing %q in %q: %w", pattern, folder, err)
	}

	paths := make([]ImagePath, len(matches))
	for i, m := range matches {
		paths[i] = newImagePath(m)
	}
	return paths, nil
}
