package stack

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"microstack/internal/models"
)

// Source enumerates the valid inputs for building a stack. Each variant
// has exactly one constructor branch in New, so every accepted input
// shape is spelled out here rather than sniffed from arbitrary values.
type Source interface {
	sourceTag()
}

// FolderSource imports every matching file under Path.
type FolderSource struct {
	Path    string
	Options ImportOptions
}

// ArraySource wraps in-memory arrays that never touched the filesystem.
// Names may be nil, in which case slices are named by index. Meta acts as
// a template: its Folder, PixelLength, and Unit are stamped onto every
// slice.
type ArraySource struct {
	Arrays []*mat.Dense
	Names  []string
	Meta   models.Meta
}

// StackSource reuses an existing stack as-is. Slices keep their
// provenance and no file is re-read.
type StackSource struct {
	Stack *Stack
}

func (FolderSource) sourceTag() {}
func (ArraySource) sourceTag()  {}
func (StackSource) sourceTag()  {}

// New builds a stack from any Source variant.
func New(src Source) (*Stack, error) {
	switch v := src.(type) {
	case FolderSource:
		_, st, err := ImportFolder(v.Path, v.Options)
		return st, err

	case ArraySource:
		if v.Names != nil && len(v.Names) != len(v.Arrays) {
			return nil, &models.ConfigError{
				Key:    "names",
				Reason: fmt.Sprintf("%d names given for %d arrays", len(v.Names), len(v.Arrays)),
			}
		}
		st := &Stack{slices: make([]Slice, 0, len(v.Arrays))}
		for i, a := range v.Arrays {
			meta := v.Meta
			if v.Names != nil {
				meta.Name = v.Names[i]
			} else {
				meta.Name = fmt.Sprintf("%d", i)
			}
			st.Append(NewSlice(a, meta))
		}
		return st, nil

	case StackSource:
		if v.Stack == nil {
			return nil, &models.ConfigError{Key: "stack", Reason: "nil stack"}
		}
		return v.Stack, nil

	case nil:
		return nil, &models.ConfigError{Key: "source", Reason: "no source given"}

	default:
		return nil, &models.ConfigError{Key: "source", Reason: fmt.Sprintf("unknown source variant %T", src)}
	}
}
