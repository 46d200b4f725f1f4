package stack

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"microstack/internal/models"
	"microstack/pkg/importer"
	"microstack/pkg/scan"
)

// ImportOptions configure one folder import. DefaultImportOptions matches
// the microscope export conventions; the zero value imports nothing
// useful because neither pattern nor extension is set.
type ImportOptions struct {
	// Pattern is a glob matched against the folder. It wins over
	// Extension when both are set; at least one must be given.
	Pattern string

	// Extension selects files by suffix, with or without a leading dot.
	Extension string

	// Sort orders files by the token at NamePosition, compared as
	// strings.
	Sort bool

	// NamePosition is the filename token used as sort key and display
	// name. Nil keeps token 0 as the sort key and uses full stems as
	// names.
	NamePosition *int

	// InvertOrder reverses the order after sorting; acquisition runs
	// bottom-to-top while display expects top-to-bottom.
	InvertOrder bool

	// DType is the numeric precision for every file of this call.
	DType models.DType

	// SkipRows passes an exact header-row count to the text decoder.
	// Nil lets the decoder probe skip counts 0..3.
	SkipRows *int

	// Delimiter overrides whitespace splitting in text files.
	Delimiter string

	// PixelLength is the physical size of one pixel, stamped onto every
	// slice's provenance. Zero means unknown.
	PixelLength float64

	// Unit is the unit of PixelLength, default micrometers.
	Unit string

	// Workers bounds parallel file decoding. Values below 2 decode
	// sequentially. Results are placed by their computed order index,
	// never by completion time, so ordering semantics do not change.
	Workers int

	// Verbose switches on progress logging.
	Verbose bool
}

// DefaultImportOptions returns the conventional settings: sorted by token
// 0, inverted order, float64 precision.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		Sort:        true,
		InvertOrder: true,
		DType:       models.Float64,
		Unit:        models.DefaultUnit,
	}
}

// ImportFolder discovers, orders, and decodes every matching file in one
// folder. It returns the ordered display names next to the stack built
// from the same pass; the two always agree index for index.
func ImportFolder(folder string, opts ImportOptions) ([]string, *Stack, error) {
	paths, err := scan.Scan(folder, opts.Pattern, opts.Extension)
	if err != nil {
		return nil, nil, err
	}

	pos := 0
	if opts.NamePosition != nil {
		pos = *opts.NamePosition
	}
	ordered, err := scan.Order(paths, scan.Options{
		Sort:     opts.Sort,
		Position: pos,
		Invert:   opts.InvertOrder,
	})
	if err != nil {
		return nil, nil, err
	}
	names, err := scan.Names(ordered, opts.NamePosition)
	if err != nil {
		return nil, nil, err
	}

	folderKey := ShortenPath(folder)
	if opts.Verbose {
		log.Info("importing stack", "folder", folderKey, "files", len(ordered), "dtype", opts.DType.String())
	}

	arrays, err := decodeAll(ordered, importer.Options{
		DType:     opts.DType,
		SkipRows:  opts.SkipRows,
		Delimiter: opts.Delimiter,
	}, opts.Workers)
	if err != nil {
		return nil, nil, err
	}

	st := &Stack{slices: make([]Slice, 0, len(arrays))}
	for i, m := range arrays {
		st.Append(NewSlice(m, models.Meta{
			Name:        names[i],
			Folder:      folderKey,
			PixelLength: opts.PixelLength,
			Unit:        opts.Unit,
		}))
	}
	if opts.Verbose {
		log.Debug("stack assembled", "folder", folderKey, "slices", st.Len())
	}
	return names, st, nil
}

// decodeAll decodes the ordered paths into a result slot per order index.
// With more than one worker the files decode concurrently, but each
// result still lands in its precomputed slot.
func decodeAll(ordered []scan.ImagePath, iopts importer.Options, workers int) ([]*mat.Dense, error) {
	arrays := make([]*mat.Dense, len(ordered))
	if workers < 2 {
		for i, p := range ordered {
			m, err := importer.FromPath(p.Path, iopts)
			if err != nil {
				return nil, err
			}
			arrays[i] = m
		}
		return arrays, nil
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, p := range ordered {
		i, p := i, p
		g.Go(func() error {
			m, err := importer.FromPath(p.Path, iopts)
			if err != nil {
				return err
			}
			arrays[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return arrays, nil
}

// MultiImport is the result of importing several folders as one logical
// stack: per-folder ordered name lists keyed by shortened folder path,
// the key visit order, and the flattened stack. Names and Stack come out
// of the same import pass; neither is ever rebuilt from the other.
type MultiImport struct {
	Names map[string][]string
	Keys  []string
	Stack *Stack
}

// ImportFolders imports every folder with the shared options and
// concatenates the per-folder stacks in input order. positions, when
// non-nil, overrides the name-token position per folder and must match
// the folder count; a mismatch fails before any file is read. Errors in
// any folder abort the whole import, there is no partial-success mode.
func ImportFolders(folders []string, positions []int, opts ImportOptions) (*MultiImport, error) {
	if positions != nil && len(positions) != len(folders) {
		return nil, &models.ConfigError{
			Key:    "imgname_position",
			Reason: fmt.Sprintf("%d positions given for %d folders", len(positions), len(folders)),
		}
	}

	res := &MultiImport{
		Names: make(map[string][]string, len(folders)),
		Stack: &Stack{},
	}
	for i, folder := range folders {
		fopts := opts
		if positions != nil {
			p := positions[i]
			fopts.NamePosition = &p
		}
		names, st, err := ImportFolder(folder, fopts)
		if err != nil {
			return nil, err
		}
		key := uniqueKey(res.Names, ShortenPath(folder), folder)
		res.Names[key] = names
		res.Keys = append(res.Keys, key)
		res.Stack.Append(st.Slices()...)
	}
	return res, nil
}

// ShortenPath keeps the last two path components, enough to tell source
// folders apart in names, titles, and mapping keys.
func ShortenPath(path string) string {
	clean := filepath.Clean(path)
	parent := filepath.Base(filepath.Dir(clean))
	if parent == "." || parent == string(filepath.Separator) {
		return filepath.Base(clean)
	}
	return parent + "/" + filepath.Base(clean)
}

// uniqueKey disambiguates mapping keys when two distinct folders shorten
// to the same string, falling back to the full cleaned path.
func uniqueKey(existing map[string][]string, key, full string) string {
	if _, taken := existing[key]; !taken {
		return key
	}
	key = filepath.Clean(full)
	for i := 2; ; i++ {
		if _, taken := existing[key]; !taken {
			return key
		}
		key = fmt.Sprintf("%s (%d)", filepath.Clean(full), i)
	}
}
