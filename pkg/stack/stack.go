package stack

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"microstack/internal/models"
)

// Stack is an ordered collection of slices treated as one logical 3D
// volume. Slices share a dtype but not necessarily a shape: with
// heterogeneous shapes the collection simply behaves as a list of arrays
// instead of a dense block. Iteration order is exactly the order computed
// at import time, and every indexing operation returns a new Stack whose
// slices keep their original provenance untouched.
type Stack struct {
	slices []Slice
}

// FromSlices builds a stack in the given order.
func FromSlices(slices ...Slice) *Stack {
	s := &Stack{slices: make([]Slice, len(slices))}
	copy(s.slices, slices)
	return s
}

// Len returns the number of slices.
func (s *Stack) Len() int { return len(s.slices) }

// Slices returns the slices in order. The returned slice header is a
// copy, so reordering it does not disturb the stack.
func (s *Stack) Slices() []Slice {
	out := make([]Slice, len(s.slices))
	copy(out, s.slices)
	return out
}

// Names returns the per-slice display names in stack order.
func (s *Stack) Names() []string {
	names := make([]string, len(s.slices))
	for i, sl := range s.slices {
		names[i] = sl.Name()
	}
	return names
}

// Append adds slices at the end, preserving their order.
func (s *Stack) Append(slices ...Slice) {
	s.slices = append(s.slices, slices...)
}

// At returns slice i. Negative indices count from the end.
func (s *Stack) At(i int) (Slice, error) {
	j, err := s.normalize(i)
	if err != nil {
		return Slice{}, err
	}
	return s.slices[j], nil
}

// Select returns a new stack containing exactly the addressed slices, in
// the given order. Negative indices count from the end.
func (s *Stack) Select(indices ...int) (*Stack, error) {
	out := &Stack{slices: make([]Slice, 0, len(indices))}
	for _, i := range indices {
		j, err := s.normalize(i)
		if err != nil {
			return nil, err
		}
		out.slices = append(out.slices, s.slices[j])
	}
	return out, nil
}

// Range returns the sub-stack addressed by start:stop:step. Bounds are
// clamped rather than rejected, matching slice-expression conventions;
// only a zero step is an error. A negative step walks backward.
func (s *Stack) Range(start, stop, step int) (*Stack, error) {
	if step == 0 {
		return nil, &models.ConfigError{Key: "step", Reason: "step must not be zero"}
	}
	n := len(s.slices)
	norm := func(i, def int) int {
		if i < 0 {
			i += n
		}
		if i < 0 {
			i = def
		}
		return i
	}
	out := &Stack{}
	if step > 0 {
		start = norm(start, 0)
		stop = norm(stop, 0)
		if stop > n {
			stop = n
		}
		for i := start; i < stop && i < n; i += step {
			out.slices = append(out.slices, s.slices[i])
		}
	} else {
		start = norm(start, -1)
		if start >= n {
			start = n - 1
		}
		stop = norm(stop, -1)
		for i := start; i > stop && i >= 0; i += step {
			out.slices = append(out.slices, s.slices[i])
		}
	}
	return out, nil
}

// Homogeneous reports whether every slice shares one shape.
func (s *Stack) Homogeneous() bool {
	_, _, ok := s.Dims()
	return ok
}

// Dims returns the shared slice shape. ok is false when the stack is
// empty or the shapes differ.
func (s *Stack) Dims() (rows, cols int, ok bool) {
	if len(s.slices) == 0 {
		return 0, 0, false
	}
	rows, cols = s.slices[0].Dims()
	for _, sl := range s.slices[1:] {
		r, c := sl.Dims()
		if r != rows || c != cols {
			return 0, 0, false
		}
	}
	return rows, cols, true
}

// MaxProject collapses the stack axis, keeping the brightest value per
// pixel. The result is a plain matrix: a reduction spanning many slices
// has no single provenance to carry. Requires homogeneous shapes.
func (s *Stack) MaxProject() (*mat.Dense, error) {
	rows, cols, ok := s.Dims()
	if !ok {
		return nil, fmt.Errorf("max projection needs a non-empty stack with one shared shape")
	}
	out := mat.DenseCopyOf(s.slices[0].Data())
	for _, sl := range s.slices[1:] {
		d := sl.Data()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if v := d.At(i, j); v > out.At(i, j) {
					out.Set(i, j, v)
				}
			}
		}
	}
	return out, nil
}

func (s *Stack) normalize(i int) (int, error) {
	j := i
	if j < 0 {
		j += len(s.slices)
	}
	if j < 0 || j >= len(s.slices) {
		return 0, fmt.Errorf("slice index %d out of range for stack of %d", i, len(s.slices))
	}
	return j, nil
}
