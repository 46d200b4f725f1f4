package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microstack/internal/models"
)

func writeText(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTextPlainGrid(t *testing.T) {
	path := writeText(t, "1 2 3\n4 5 6\n")

	m, err := FromPath(path, Options{})
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 6.0, m.At(1, 2))
}

func TestTextAutoSkipsHeader(t *testing.T) {
	path := writeText(t, "Microscope LSM-900\nDate 2024-02-01\n7 8\n9 10\n")

	m, err := FromPath(path, Options{})
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 7.0, m.At(0, 0))
}

func TestTextExplicitSkipRows(t *testing.T) {
	skip := 2
	path := writeText(t, "Microscope LSM-900\nDate 2024-02-01\n7 8\n9 10\n")

	m, err := FromPath(path, Options{SkipRows: &skip})
	require.NoError(t, err)
	assert.Equal(t, 7.0, m.At(0, 0))
}

func TestTextExplicitSkipRowsIsExact(t *testing.T) {
	// An explicit skip count is used as given; no probing papers over a
	// wrong value.
	skip := 0
	path := writeText(t, "Microscope LSM-900\n1 2\n3 4\n")

	_, err := FromPath(path, Options{SkipRows: &skip})
	require.Error(t, err)

	var decErr *models.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, 1, decErr.Attempts)
}

func TestTextHeaderProbeIsBounded(t *testing.T) {
	// Five header lines defeat every skip count in 0..3; the decoder
	// must fail after exactly four attempts, never return garbage.
	path := writeText(t, "header one\nheader two\nheader three\nheader four\nheader five\n1 2\n3 4\n")

	_, err := FromPath(path, Options{})
	require.Error(t, err)

	var decErr *models.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, 4, decErr.Attempts)
	assert.Contains(t, err.Error(), path)
}

func TestTextRaggedRowsRejected(t *testing.T) {
	path := writeText(t, "1 2 3\n4 5\n")

	_, err := FromPath(path, Options{})
	require.Error(t, err)
}

func TestTextDelimiter(t *testing.T) {
	path := writeText(t, "1,2,3\n4,5,6\n")

	m, err := FromPath(path, Options{Delimiter: ","})
	require.NoError(t, err)
	assert.Equal(t, 5.0, m.At(1, 1))
}

func TestTextBlankLinesIgnored(t *testing.T) {
	path := writeText(t, "1 2\n\n3 4\n\n")

	m, err := FromPath(path, Options{})
	require.NoError(t, err)
	r, _ := m.Dims()
	assert.Equal(t, 2, r)
}

func TestTextFloat32Quantization(t *testing.T) {
	path := writeText(t, "0.1 0.2\n0.3 0.4\n")

	m, err := FromPath(path, Options{DType: models.Float32})
	require.NoError(t, err)
	assert.Equal(t, float64(float32(0.1)), m.At(0, 0))
	assert.Equal(t, float64(float32(0.4)), m.At(1, 1))
}

func TestTextMissingFile(t *testing.T) {
	_, err := FromPath(filepath.Join(t.TempDir(), "absent.txt"), Options{})
	require.Error(t, err)
}
