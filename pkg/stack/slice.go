// Package stack assembles ordered, provenance-tagged collections of 2D
// slices from one or more folders and supports non-destructive indexing
// of the result.
package stack

import (
	"gonum.org/v1/gonum/mat"

	"microstack/internal/models"
)

// Slice is one imported 2D numeric array together with its provenance.
// The provenance is set at construction and only ever copied, never
// recomputed, through downstream operations. Two slices with identical
// payloads but different provenance are distinct values: which physical
// sample a pixel came from matters as much as the pixel value.
type Slice struct {
	data *mat.Dense
	meta models.Meta
}

// NewSlice wraps a payload with its provenance.
func NewSlice(data *mat.Dense, meta models.Meta) Slice {
	return Slice{data: data, meta: meta.WithDefaults()}
}

// Data returns the numeric payload. The matrix is shared, not copied:
// downstream pixel edits are visible to every holder, the provenance is
// not affected by them.
func (s Slice) Data() *mat.Dense { return s.data }

// Meta returns the provenance record.
func (s Slice) Meta() models.Meta { return s.meta }

func (s Slice) Name() string        { return s.meta.Name }
func (s Slice) Folder() string      { return s.meta.Folder }
func (s Slice) PixelLength() float64 { return s.meta.PixelLength }
func (s Slice) Unit() string        { return s.meta.Unit }

// Dims returns the payload shape as (rows, cols).
func (s Slice) Dims() (rows, cols int) { return s.data.Dims() }

// Clone deep-copies the payload and carries the provenance unchanged.
func (s Slice) Clone() Slice {
	return Slice{data: mat.DenseCopyOf(s.data), meta: s.meta}
}

// Apply returns a new slice whose payload is fn applied elementwise. The
// shape is preserved and the provenance is copied unchanged; reductions
// that change shape must not go through here.
func (s Slice) Apply(fn func(v float64) float64) Slice {
	r, c := s.data.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, fn(s.data.At(i, j)))
		}
	}
	return Slice{data: out, meta: s.meta}
}
