package retention

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nomadcxx/vidsweep/internal/media"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExecuteDryRunTouchesNothing(t *testing.T) {
	sizes := media.NewSizeCache()
	sizes.Put("/library/Movie.Name.720p.mkv", 100<<20)
	sizes.Put("/library/Movie.Name.480p.mkv", 200<<20)

	selection := map[string]bool{
		"/library/Movie.Name.720p.mkv": true,
		"/library/Movie.Name.480p.mkv": true,
	}

	e := New(sizes, nil)
	report := e.Execute(selection, true, "")

	assert.Len(t, report.Skipped, 2)
	assert.Empty(t, report.Deleted)
	assert.Empty(t, report.Moved)
	assert.Empty(t, report.Failed)
	assert.Equal(t, int64(300<<20), report.TotalFreedBytes)

	// The selection itself is left for the caller to review.
	assert.Len(t, selection, 2)
}

func TestExecuteDelete(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFile(t, dir, "a.mkv", "aaaa")
	pathB := writeFile(t, dir, "b.mkv", "bb")

	e := New(nil, nil)
	report := e.Execute(map[string]bool{pathA: true, pathB: true}, false, "")

	require.Len(t, report.Deleted, 2)
	assert.Empty(t, report.Failed)
	assert.Equal(t, int64(6), report.TotalFreedBytes)

	assert.NoFileExists(t, pathA)
	assert.NoFileExists(t, pathB)
}

func TestExecuteDeleteMissingFileIsIsolated(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFile(t, dir, "a.mkv", "aaaa")
	missing := filepath.Join(dir, "gone.mkv")

	e := New(nil, nil)
	report := e.Execute(map[string]bool{pathA: true, missing: true}, false, "")

	// The missing file fails on its own; the real one is still removed.
	require.Len(t, report.Failed, 1)
	assert.Equal(t, missing, report.Failed[0].Path)
	require.Len(t, report.Deleted, 1)
	assert.Equal(t, pathA, report.Deleted[0].Path)
	assert.NoFileExists(t, pathA)
}

func TestExecuteMove(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := filepath.Join(t.TempDir(), "quarantine")
	path := writeFile(t, srcDir, "Movie.Name.720p.mkv", "data")

	e := New(nil, nil)
	report := e.Execute(map[string]bool{path: true}, false, dstDir)

	require.Len(t, report.Moved, 1)
	assert.Empty(t, report.Failed)

	dst := filepath.Join(dstDir, "Movie.Name.720p.mkv")
	assert.Equal(t, dst, report.Moved[0].Destination)
	assert.NoFileExists(t, path)
	assert.FileExists(t, dst)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestExecuteMoveRefusesBasenameCollision(t *testing.T) {
	// Two selected files with the same basename and one destination:
	// the first (in path order) moves, the second must fail rather
	// than overwrite it.
	root := t.TempDir()
	dirA := filepath.Join(root, "a")
	dirB := filepath.Join(root, "b")
	require.NoError(t, os.MkdirAll(dirA, 0755))
	require.NoError(t, os.MkdirAll(dirB, 0755))

	first := writeFile(t, dirA, "Movie.Name.mkv", "first")
	second := writeFile(t, dirB, "Movie.Name.mkv", "second")
	dstDir := filepath.Join(root, "dst")

	e := New(nil, nil)
	report := e.Execute(map[string]bool{first: true, second: true}, false, dstDir)

	require.Len(t, report.Moved, 1)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, first, report.Moved[0].Path)
	assert.Equal(t, second, report.Failed[0].Path)
	assert.Contains(t, report.Failed[0].Reason, "already exists")

	// The survivor at the destination is the first file, untouched.
	content, err := os.ReadFile(filepath.Join(dstDir, "Movie.Name.mkv"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))

	// The failed source is still where it was.
	assert.FileExists(t, second)

	// Freed bytes count both entries, including the failed one.
	assert.Equal(t, int64(len("first")+len("second")), report.TotalFreedBytes)
}

func TestExecuteEmptySelection(t *testing.T) {
	e := New(nil, nil)
	report := e.Execute(nil, false, "")

	assert.Zero(t, report.TotalFreedBytes)
	assert.Empty(t, report.Deleted)
	assert.Empty(t, report.Moved)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Failed)
}

func TestMoveFileRenamesWithinFilesystem(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "src.mkv", "data")
	dst := filepath.Join(dir, "dst.mkv")

	require.NoError(t, moveFile(src, dst))
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
}

func TestCopyFileRefusesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "src.mkv", "data")
	dst := writeFile(t, dir, "dst.mkv", "existing")

	err := copyFile(src, dst)
	require.Error(t, err)

	// The existing destination is untouched.
	content, readErr := os.ReadFile(dst)
	require.NoError(t, readErr)
	assert.Equal(t, "existing", string(content))
}
