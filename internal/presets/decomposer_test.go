package presets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/digidem/mapeo-config-deconstructor/internal/files/filesystem"
	"github.com/digidem/mapeo-config-deconstructor/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readOutput(t *testing.T, path ...string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(path...))
	require.NoError(t, err)
	return string(content)
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func runOn(t *testing.T, catalog string) (string, error) {
	t.Helper()
	mfs := filesystem.NewMemoryFileSystem("/config")
	mfs.AddFile("presets.json", catalog)
	out := t.TempDir()
	err := NewDecomposer(mfs, logging.NewNullLogger()).Run(context.Background(), "/config", out)
	return out, err
}

func TestDecomposer_SplitsCatalog(t *testing.T) {
	catalog := `{
  "presets": {
    "building": {"name": "Building", "fields": ["building-type", "name"], "geometry": ["point", "area"]},
    "river": {"name": "River", "tags": {"waterway": "river"}}
  },
  "fields": {
    "building-type": {"key": "building", "type": "select_one", "options": ["house", "school"]},
    "name": {"tagKey": "name", "type": "text", "universal": true},
    "notes": {"key": "notes", "type": "textarea", "placeholder": "Extra notes"}
  },
  "defaults": {"point": ["building"], "area": ["building"], "line": ["river"]},
  "categories": {"ignored": true}
}`
	out, err := runOn(t, catalog)
	require.NoError(t, err)

	assert.Equal(t, 2, countFiles(t, filepath.Join(out, "presets")))
	assert.Equal(t, 3, countFiles(t, filepath.Join(out, "fields")))

	assert.Equal(t, `{"name":"Building","fields":["building-type","name"],"geometry":["point","area"]}`,
		readOutput(t, out, "presets", "building.json"))
	assert.Equal(t, `{"name":"River","tags":{"waterway":"river"}}`,
		readOutput(t, out, "presets", "river.json"))

	assert.Equal(t, `{"tagKey":"building","type":"selectOne","options":[{"label":"house","value":"house"},{"label":"school","value":"school"}],"universal":false}`,
		readOutput(t, out, "fields", "building-type.json"))
	assert.Equal(t, `{"tagKey":"name","type":"text","universal":true}`,
		readOutput(t, out, "fields", "name.json"))
	assert.Equal(t, `{"tagKey":"notes","type":"text","helperText":"Extra notes","universal":false}`,
		readOutput(t, out, "fields", "notes.json"))

	assert.Equal(t, `{"point":["building"],"area":["building"],"line":["river"]}`,
		readOutput(t, out, "defaults.json"))

	assert.NoFileExists(t, filepath.Join(out, "categories.json"))
	assert.NoDirExists(t, filepath.Join(out, "categories"))
}

func TestDecomposer_EmptyPresetBody(t *testing.T) {
	out, err := runOn(t, `{"presets":{"p1":{}},"fields":{"f1":{"key":"f1","type":"select_one","options":["a","b"]}},"defaults":{"point":["p1"]}}`)
	require.NoError(t, err)

	assert.Equal(t, `{}`, readOutput(t, out, "presets", "p1.json"))
	assert.Equal(t, `{"tagKey":"f1","type":"selectOne","options":[{"label":"a","value":"a"},{"label":"b","value":"b"}],"universal":false}`,
		readOutput(t, out, "fields", "f1.json"))
	assert.Equal(t, `{"point":["p1"]}`, readOutput(t, out, "defaults.json"))
}

func TestDecomposer_PreservesMarkup(t *testing.T) {
	out, err := runOn(t, `{"presets":{"p":{"name":"<Café> & bar"}}}`)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"<Café> & bar"}`, readOutput(t, out, "presets", "p.json"))
}

func TestDecomposer_Errors(t *testing.T) {
	t.Run("missing catalog", func(t *testing.T) {
		mfs := filesystem.NewMemoryFileSystem("/config")
		err := NewDecomposer(mfs, logging.NewNullLogger()).Run(context.Background(), "/config", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read catalog")
	})

	t.Run("malformed catalog", func(t *testing.T) {
		out, err := runOn(t, `{"presets": {`)
		require.Error(t, err)
		assert.NoDirExists(t, filepath.Join(out, "presets"))
	})

	t.Run("bad entry does not stop others", func(t *testing.T) {
		out, err := runOn(t, `{"fields":{"good":{"key":"g"},"bad":["not","an","object"]}}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"bad"`)
		assert.Equal(t, `{"tagKey":"g","universal":false}`, readOutput(t, out, "fields", "good.json"))
		assert.NoFileExists(t, filepath.Join(out, "fields", "bad.json"))
	})

	t.Run("section not an object", func(t *testing.T) {
		_, err := runOn(t, `{"presets":["a"]}`)
		require.Error(t, err)
	})

	t.Run("escaping id", func(t *testing.T) {
		out, err := runOn(t, `{"presets":{"../../evil":{}}}`)
		require.Error(t, err)
		assert.NoFileExists(t, filepath.Join(filepath.Dir(out), "evil.json"))
	})
}

func TestDecomposer_CancelledContext(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/config")
	mfs.AddFile("presets.json", `{"presets":{"p":{}}}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewDecomposer(mfs, logging.NewNullLogger()).Run(ctx, "/config", t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDecomposer_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewDecomposer(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewDecomposer(filesystem.NewOSFileSystem(), nil) })
	assert.Equal(t, "presets", NewDecomposer(filesystem.NewOSFileSystem(), logging.NewNullLogger()).Name())
}
