package scan

import (
	"sort"
)

// Options control how discovered paths are ordered.
type Options struct {
	// Sort orders paths ascending by the token at Position, compared as
	// strings. Keys are never compared numerically; callers relying on
	// numeric filename order must zero-pad their filenames.
	Sort bool

	// Position is the token index used as the sort key. Negative values
	// count from the end of the token sequence.
	Position int

	// Invert reverses the order after sorting. Acquisition is often
	// bottom-to-top while display expects top-to-bottom.
	Invert bool
}

// Order computes the deterministic order for one stack import. The sort
// is stable: paths with equal keys keep their relative order from the
// unsorted input. Every path's sort key is extracted up front, so a
// single filename without a token at the configured position aborts the
// whole ordering with an error naming that file.
func Order(paths []ImagePath, opts Options) ([]ImagePath, error) {
	out := make([]ImagePath, len(paths))
	copy(out, paths)

	if opts.Sort {
		keys := make([]string, len(out))
		for i, p := range out {
			k, err := p.Token(opts.Position)
			if err != nil {
				return nil, err
			}
			keys[i] = k
		}
		idx := make([]int, len(out))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })
		sorted := make([]ImagePath, len(out))
		for i, j := range idx {
			sorted[i] = out[j]
		}
		out = sorted
	}

	if opts.Invert {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// Names derives one display name per path: the token at *position when
// position is given, the full filename stem otherwise.
func Names(paths []ImagePath, position *int) ([]string, error) {
	names := make([]string, len(paths))
	for i, p := range paths {
		if position == nil {
			names[i] = p.Stem()
			continue
		}
		tok, err := p.Token(*position)
		if err != nil {
			return nil, err
		}
		names[i] = tok
	}
	return names, nil
}
