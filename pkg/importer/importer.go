// Package importer decodes single image files into 2D numeric matrices.
// The decoder is picked purely by file extension: delimited-text exports
// from the microscope software, or grayscale raster formats (TIFF, PNG,
// JPEG).
package importer

import (
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"

	"microstack/internal/models"
)

// Options configure one import call. The same options apply to every file
// of a stack import; precision is configured once per call, not per file.
type Options struct {
	// DType is the numeric precision every decoded value is cast to.
	DType models.DType

	// SkipRows is the exact number of header rows to skip in text files.
	// When nil, the decoder probes skip counts 0 through 3 in order and
	// keeps the first that parses.
	SkipRows *int

	// Delimiter overrides whitespace field splitting for text files.
	Delimiter string
}

// FromPath decodes one file, choosing the decoder from the path's
// extension.
func FromPath(path string, opts Options) (*mat.Dense, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".csv", ".dat":
		return fromText(path, opts)
	case ".tif", ".tiff", ".png", ".jpg", ".jpeg":
		return fromImage(path, opts)
	default:
		return nil, &models.FormatError{Ext: ext}
	}
}
