// Package models holds the value types shared across the import pipeline:
// per-slice provenance metadata, the numeric precision tag, and the error
// taxonomy surfaced by the scanner, importer and assembler.
package models

// DefaultUnit is the physical unit assumed for pixel lengths when the
// caller does not state one.
const DefaultUnit = "µm"

// Meta carries the provenance of a single imported slice. It is set once
// at import time and copied by value through every downstream slicing or
// indexing operation; nothing recomputes it.
type Meta struct {
	// Name identifies the slice, usually a token extracted from its
	// filename (e.g. "021" for "Image3_021.txt").
	Name string

	// Folder is the shortened source folder path the slice was read from.
	Folder string

	// PixelLength is the physical size one pixel represents, in Unit.
	// Zero means unknown.
	PixelLength float64

	// Unit is the unit of PixelLength.
	Unit string
}

// WithDefaults fills the unit in if the caller left it empty.
func (m Meta) WithDefaults() Meta {
	if m.Unit == "" {
		m.Unit = DefaultUnit
	}
	return m
}
