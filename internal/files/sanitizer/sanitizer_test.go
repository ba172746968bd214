package sanitizer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/digidem/mapeo-config-deconstructor/internal/logging"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var names []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		names = append(names, rel)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(names)
	return names
}

func TestSanitize_RemovesListedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"icons.svg", "presets.json", "VERSION", "metadata.json", "package.json", "defaults.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "presets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "presets", "presets.json"), []byte("{}"), 0644))

	s := NewSanitizer(deconstruct.DefaultCleanupFiles, logging.NewNullLogger())
	require.NoError(t, s.Sanitize(context.Background(), dir))

	assert.Equal(t, []string{
		"defaults.json",
		"metadata.json",
		"package.json",
		"presets",
		filepath.Join("presets", "presets.json"),
	}, listTree(t, dir))
}

func TestSanitize_Idempotent(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"style.css", "translations.json", "keep.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	s := NewSanitizer(deconstruct.DefaultCleanupFiles, logging.NewNullLogger())

	require.NoError(t, s.Sanitize(context.Background(), dir))
	once := listTree(t, dir)
	require.NoError(t, s.Sanitize(context.Background(), dir))
	assert.Equal(t, once, listTree(t, dir))
	assert.Equal(t, []string{"keep.txt"}, once)
}

func TestSanitize_LeavesDirectoriesAlone(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "style.css"), 0755))

	s := NewSanitizer([]string{"style.css"}, logging.NewNullLogger())
	require.NoError(t, s.Sanitize(context.Background(), dir))
	assert.DirExists(t, filepath.Join(dir, "style.css"))
}

func TestSanitize_RejectsEscapingNames(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "out")
	require.NoError(t, os.Mkdir(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "precious"), []byte("x"), 0644))

	s := NewSanitizer([]string{"../precious"}, logging.NewNullLogger())
	assert.Error(t, s.Sanitize(context.Background(), dir))
	assert.FileExists(t, filepath.Join(parent, "precious"))
}

func TestSanitize_MissingDirectory(t *testing.T) {
	s := NewSanitizer(deconstruct.DefaultCleanupFiles, logging.NewNullLogger())
	assert.NoError(t, s.Sanitize(context.Background(), filepath.Join(t.TempDir(), "absent")))
}

func TestNewSanitizer_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() { NewSanitizer(nil, nil) })
}
