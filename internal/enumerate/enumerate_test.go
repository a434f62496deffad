package enumerate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fseq/fseq/internal/config"
	"github.com/fseq/fseq/internal/sequence"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func collectNames(e *Enumerator) (files, dirs []string) {
	var entry sequence.Entry
	for e.Next(&entry) {
		if entry.IsDirectory {
			dirs = append(dirs, entry.Name)
		} else {
			files = append(files, entry.Name)
		}
	}
	return
}

func TestNew_YieldsFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "f1.jpg", "f2.jpg", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	e, err := New(Options{Root: dir})
	require.NoError(t, err)

	files, dirs := collectNames(e)
	assert.ElementsMatch(t, []string{"f1.jpg", "f2.jpg", "notes.txt"}, files)
	assert.Equal(t, []string{"sub"}, dirs)
	assert.Equal(t, 4, e.Len())
}

func TestNew_IncludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.png", "c.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	e, err := New(Options{Root: dir, Include: []string{"*.png"}})
	require.NoError(t, err)

	files, dirs := collectNames(e)
	assert.ElementsMatch(t, []string{"a.png", "b.png"}, files)
	assert.Equal(t, []string{"sub"}, dirs, "include globs never filter directories")
}

func TestNew_ExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "a.tmp")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules"), 0o755))

	e, err := New(Options{Root: dir, Exclude: []string{"*.tmp", "node_modules"}})
	require.NoError(t, err)

	files, dirs := collectNames(e)
	assert.Equal(t, []string{"a.png"}, files)
	assert.Empty(t, dirs, "exclude globs filter directories too")
}

func TestNew_Gitignore(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "render.png", "scratch.tmp")

	gp := config.NewGitignoreParser()
	gp.AddPattern("*.tmp")

	e, err := New(Options{Root: dir, Gitignore: gp})
	require.NoError(t, err)

	files, _ := collectNames(e)
	assert.Equal(t, []string{"render.png"}, files)
}

func TestNew_SymlinksSkippedByDefault(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "real.png")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real.png"), filepath.Join(dir, "link.png")))

	e, err := New(Options{Root: dir})
	require.NoError(t, err)
	files, _ := collectNames(e)
	assert.Equal(t, []string{"real.png"}, files)

	e, err = New(Options{Root: dir, FollowSymlinks: true})
	require.NoError(t, err)
	files, _ = collectNames(e)
	assert.ElementsMatch(t, []string{"real.png", "link.png"}, files)
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(Options{Root: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestCollate_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "f1.jpg", "f2.jpg", "f3.jpg", "readme.md")

	fc, err := Collate(Options{Root: dir}, sequence.Config{Pack: true, Sort: true})
	require.NoError(t, err)

	require.Len(t, fc.Files, 2)
	assert.Equal(t, sequence.Single, fc.Files[0].Type)
	assert.Equal(t, "readme.md", fc.Files[0].Filename)
	assert.Equal(t, sequence.Packed, fc.Files[1].Type)
	assert.Equal(t, "f#.jpg", fc.Files[1].Pattern)
	assert.Equal(t, sequence.Index(1), fc.Files[1].Start)
	assert.Equal(t, sequence.Index(3), fc.Files[1].End)
}
