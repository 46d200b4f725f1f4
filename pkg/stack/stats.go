package stack

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SliceStats summarizes one slice's intensity distribution.
type SliceStats struct {
	Name   string
	Rows   int
	Cols   int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Stats computes per-slice summary statistics in stack order.
func (s *Stack) Stats() []SliceStats {
	out := make([]SliceStats, 0, len(s.slices))
	for _, sl := range s.slices {
		r, c := sl.Dims()
		// Payloads are always freshly allocated Dense matrices, so the
		// raw backing array is contiguous.
		data := sl.Data().RawMatrix().Data
		out = append(out, SliceStats{
			Name:   sl.Name(),
			Rows:   r,
			Cols:   c,
			Min:    floats.Min(data),
			Max:    floats.Max(data),
			Mean:   stat.Mean(data, nil),
			StdDev: stat.StdDev(data, nil),
		})
	}
	return out
}

// Histogram counts the stack's intensity values into bins equally spaced
// between the global minimum and maximum. It spans every slice, so the
// result carries no per-slice provenance.
func (s *Stack) Histogram(bins int) (edges []float64, counts []int) {
	if bins < 1 || len(s.slices) == 0 {
		return nil, nil
	}
	lo, hi := s.slices[0].Data().At(0, 0), s.slices[0].Data().At(0, 0)
	for _, sl := range s.slices {
		data := sl.Data().RawMatrix().Data
		if v := floats.Min(data); v < lo {
			lo = v
		}
		if v := floats.Max(data); v > hi {
			hi = v
		}
	}
	edges = make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + (hi-lo)*float64(i)/float64(bins)
	}
	counts = make([]int, bins)
	if hi <= lo {
		for _, sl := range s.slices {
			counts[0] += len(sl.Data().RawMatrix().Data)
		}
		return edges, counts
	}
	width := (hi - lo) / float64(bins)
	for _, sl := range s.slices {
		for _, v := range sl.Data().RawMatrix().Data {
			i := int((v - lo) / width)
			if i >= bins {
				i = bins - 1
			}
			counts[i]++
		}
	}
	return edges, counts
}
