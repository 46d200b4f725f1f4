package importer

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"microstack/internal/models"
)

// maxHeaderSkip bounds the header-probing heuristic. The microscope
// export writes between zero and three metadata lines before the pixel
// rows, so skip counts 0..3 are tried in order and nothing beyond.
const maxHeaderSkip = 3

// fromText decodes a delimited-text numeric grid. An explicit SkipRows is
// used exactly and any failure propagates; otherwise the bounded header
// probe runs and the first skip count that parses wins.
func fromText(path string, opts Options) (*mat.Dense, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")

	if opts.SkipRows != nil {
		m, err := parseRows(lines, *opts.SkipRows, opts)
		if err != nil {
			return nil, &models.DecodeError{Path: path, Attempts: 1, Err: err}
		}
		return m, nil
	}

	var lastErr error
	for skip := 0; skip <= maxHeaderSkip; skip++ {
		m, err := parseRows(lines, skip, opts)
		if err == nil {
			return m, nil
		}
		lastErr = err
	}
	return nil, &models.DecodeError{Path: path, Attempts: maxHeaderSkip + 1, Err: lastErr}
}

// parseRows parses everything after the first skip lines as a rectangular
// float grid. Blank lines are ignored; ragged rows and non-numeric fields
// are errors so the header probe can tell a bad skip count apart.
func parseRows(lines []string, skip int, opts Options) (*mat.Dense, error) {
	if skip < 0 {
		return nil, fmt.Errorf("negative skip count %d", skip)
	}
	if skip > len(lines) {
		return nil, fmt.Errorf("cannot skip %d rows of %d", skip, len(lines))
	}

	var rows [][]float64
	width := -1
	for n, line := range lines[skip:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := splitFields(line, opts.Delimiter)
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", skip+n, err)
			}
			row[i] = opts.DType.Cast(v)
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("row %d has %d columns, want %d", skip+n, len(row), width)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New("no numeric rows")
	}

	m := mat.NewDense(len(rows), width, nil)
	for r, row := range rows {
		m.SetRow(r, row)
	}
	return m, nil
}

func splitFields(line, delim string) []string {
	if delim == "" {
		return strings.Fields(line)
	}
	parts := strings.Split(line, delim)
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
