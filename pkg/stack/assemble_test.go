package stack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microstack/internal/models"
)

// writeGrid writes a small text grid whose single value identifies the
// file, so import order is visible in the payload.
func writeGrid(t *testing.T, dir, name string, value float64) {
	t.Helper()
	content := fmt.Sprintf("%g %g\n%g %g\n", value, value, value, value)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func txtOptions(position int) ImportOptions {
	opts := DefaultImportOptions()
	opts.Extension = ".txt"
	opts.NamePosition = &position
	opts.InvertOrder = false
	return opts
}

func TestImportFolderNumericOrder(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir, "img_001.txt", 1)
	writeGrid(t, dir, "img_000.txt", 0)
	writeGrid(t, dir, "img_002.txt", 2)

	names, st, err := ImportFolder(dir, txtOptions(1))
	require.NoError(t, err)

	assert.Equal(t, []string{"000", "001", "002"}, names)
	assert.Equal(t, names, st.Names())
	require.Equal(t, 3, st.Len())
	for i, sl := range st.Slices() {
		assert.Equal(t, float64(i), sl.Data().At(0, 0))
	}
}

func TestImportFolderInverted(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir, "img_000.txt", 0)
	writeGrid(t, dir, "img_001.txt", 1)
	writeGrid(t, dir, "img_002.txt", 2)

	opts := txtOptions(1)
	opts.InvertOrder = true

	names, _, err := ImportFolder(dir, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"002", "001", "000"}, names)
}

func TestImportFolderStampsProvenance(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir, "img_000.txt", 0)

	opts := txtOptions(1)
	opts.PixelLength = 0.169
	opts.Unit = "nm"

	_, st, err := ImportFolder(dir, opts)
	require.NoError(t, err)

	sl, _ := st.At(0)
	assert.Equal(t, "000", sl.Name())
	assert.Equal(t, ShortenPath(dir), sl.Folder())
	assert.Equal(t, 0.169, sl.PixelLength())
	assert.Equal(t, "nm", sl.Unit())
}

func TestImportFolderStemNames(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir, "img_000.txt", 0)
	writeGrid(t, dir, "img_001.txt", 1)

	opts := DefaultImportOptions()
	opts.Extension = "txt"
	opts.InvertOrder = false
	// No name position: full stems name the slices, token 0 sorts them.
	opts.NamePosition = nil

	names, _, err := ImportFolder(dir, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"img_000", "img_001"}, names)
}

func TestImportFolderRequiresPatternOrExtension(t *testing.T) {
	opts := DefaultImportOptions()

	_, _, err := ImportFolder(t.TempDir(), opts)
	var cfgErr *models.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestImportFolderFloat32(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img_0.txt"), []byte("0.1 0.2\n"), 0644))

	opts := txtOptions(1)
	opts.DType = models.Float32

	_, st, err := ImportFolder(dir, opts)
	require.NoError(t, err)
	sl, _ := st.At(0)
	assert.Equal(t, float64(float32(0.1)), sl.Data().At(0, 0))
}

func TestImportFolderAbortsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir, "img_000.txt", 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img_001.txt"),
		[]byte("h1\nh2\nh3\nh4\nh5\nnot numeric ever\n"), 0644))

	_, _, err := ImportFolder(dir, txtOptions(1))
	require.Error(t, err)

	var decErr *models.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Contains(t, decErr.Path, "img_001.txt")
}

func TestImportFolderParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		writeGrid(t, dir, fmt.Sprintf("img_%03d.txt", i), float64(i))
	}

	seqNames, seqStack, err := ImportFolder(dir, txtOptions(1))
	require.NoError(t, err)

	par := txtOptions(1)
	par.Workers = 4
	parNames, parStack, err := ImportFolder(dir, par)
	require.NoError(t, err)

	assert.Equal(t, seqNames, parNames)
	require.Equal(t, seqStack.Len(), parStack.Len())
	for i := range seqStack.Slices() {
		a, _ := seqStack.At(i)
		b, _ := parStack.At(i)
		assert.Equal(t, a.Meta(), b.Meta())
		assert.Equal(t, a.Data().At(0, 0), b.Data().At(0, 0))
	}
}

func TestImportFoldersFlattens(t *testing.T) {
	base := t.TempDir()
	dirA := filepath.Join(base, "healthy")
	dirB := filepath.Join(base, "treated")
	require.NoError(t, os.Mkdir(dirA, 0755))
	require.NoError(t, os.Mkdir(dirB, 0755))
	for i := 0; i < 3; i++ {
		writeGrid(t, dirA, fmt.Sprintf("img_%03d.txt", i), float64(i))
	}
	for i := 0; i < 2; i++ {
		writeGrid(t, dirB, fmt.Sprintf("img_%03d.txt", i), float64(10+i))
	}

	res, err := ImportFolders([]string{dirA, dirB}, nil, txtOptions(1))
	require.NoError(t, err)

	assert.Equal(t, 5, res.Stack.Len())
	require.Len(t, res.Keys, 2)
	require.Len(t, res.Names, 2)
	assert.Len(t, res.Names[res.Keys[0]], 3)
	assert.Len(t, res.Names[res.Keys[1]], 2)

	// Folder-visit order first, folder-internal order second.
	folders := make([]string, 0, 5)
	for _, sl := range res.Stack.Slices() {
		folders = append(folders, sl.Folder())
	}
	assert.Equal(t, []string{
		res.Keys[0], res.Keys[0], res.Keys[0],
		res.Keys[1], res.Keys[1],
	}, folders)
}

func TestImportFoldersPositionListMismatch(t *testing.T) {
	// Three folders, two positions: fails before any file is read, so
	// nonexistent folders never surface a filesystem error.
	folders := []string{"/does/not/exist/a", "/does/not/exist/b", "/does/not/exist/c"}

	_, err := ImportFolders(folders, []int{0, 1}, txtOptions(0))
	require.Error(t, err)

	var cfgErr *models.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "imgname_position", cfgErr.Key)
}

func TestImportFoldersPerFolderPositions(t *testing.T) {
	base := t.TempDir()
	dirA := filepath.Join(base, "a")
	dirB := filepath.Join(base, "b")
	require.NoError(t, os.Mkdir(dirA, 0755))
	require.NoError(t, os.Mkdir(dirB, 0755))
	writeGrid(t, dirA, "img_007.txt", 7)
	writeGrid(t, dirB, "003_scan.txt", 3)

	res, err := ImportFolders([]string{dirA, dirB}, []int{1, 0}, txtOptions(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"007"}, res.Names[res.Keys[0]])
	assert.Equal(t, []string{"003"}, res.Names[res.Keys[1]])
}

func TestImportFoldersAbortsOnFolderError(t *testing.T) {
	base := t.TempDir()
	dirA := filepath.Join(base, "a")
	require.NoError(t, os.Mkdir(dirA, 0755))
	writeGrid(t, dirA, "img_000.txt", 0)

	opts := DefaultImportOptions()
	// Neither pattern nor extension: the first folder already fails.
	_, err := ImportFolders([]string{dirA}, nil, opts)
	require.Error(t, err)
}

func TestShortenPath(t *testing.T) {
	assert.Equal(t, "exp1/stack", ShortenPath("/data/2024/exp1/stack"))
	assert.Equal(t, "stack", ShortenPath("stack"))
	assert.Equal(t, "exp1/stack", ShortenPath("/data/2024/exp1/stack/"))
}
