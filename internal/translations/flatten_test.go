package translations

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/digidem/mapeo-config-deconstructor/internal/files/filesystem"
	"github.com/digidem/mapeo-config-deconstructor/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTranslations = `{
  "en": {
    "presets": {"building": {"name": "Building"}, "river": {"name": "River"}},
    "fields": {"name": {"label": "Name", "helperText": "Common name for this place."}},
    "categories": {}
  },
  "fr": {
    "presets": {"building": {"name": "Bâtiment"}},
    "fields": {"name": {"label": "Nom", "helperText": "Nom <commun> du lieu."}},
    "categories": {"water": {"name": "Eau"}}
  }
}`

func TestFlatten(t *testing.T) {
	msgs := Flatten(Language{
		Presets: map[string]NameText{"building": {Name: "Building"}, "unnamed": {}},
		Fields: map[string]FieldText{
			"name":     {Label: "Name", HelperText: "Common name"},
			"notes":    {Label: "Notes"},
			"hintOnly": {HelperText: "ignored without a label"},
		},
		Categories: map[string]NameText{"water": {Name: "Water"}},
	})

	assert.Equal(t, Messages{
		"presets.building.name":  {Description: "The name of preset 'building'", Message: "Building"},
		"fields.name.label":      {Description: "Label for field 'name'", Message: "Name"},
		"fields.name.helperText": {Description: "Helper text for field 'name'", Message: "Common name"},
		"fields.notes.label":     {Description: "Label for field 'notes'", Message: "Notes"},
		"categories.water.name":  {Description: "The name of category 'water'", Message: "Water"},
	}, msgs)
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(Language{}))
}

func TestMessages_MarshalIndent(t *testing.T) {
	msgs := Messages{
		"presets.building.name":  {Description: "The name of preset 'building'", Message: "Building"},
		"fields.name.label":      {Description: "Label for field 'name'", Message: "Name"},
		"fields.name.helperText": {Description: "Helper text for field 'name'", Message: "A & <b>"},
	}
	out, err := msgs.MarshalIndent()
	require.NoError(t, err)

	expected := `{
  "fields.name.helperText": {
    "description": "Helper text for field 'name'",
    "message": "A & <b>"
  },
  "fields.name.label": {
    "description": "Label for field 'name'",
    "message": "Name"
  },
  "presets.building.name": {
    "description": "The name of preset 'building'",
    "message": "Building"
  }
}`
	assert.Equal(t, expected, string(out))
}

func runFlattener(t *testing.T, content string) (string, error) {
	t.Helper()
	mfs := filesystem.NewMemoryFileSystem("/config")
	if content != "" {
		mfs.AddFile("translations.json", content)
	}
	out := t.TempDir()
	err := NewFlattener(mfs, logging.NewNullLogger()).Run(context.Background(), "/config", out)
	return out, err
}

func TestFlattener_WritesOneFilePerLanguage(t *testing.T) {
	out, err := runFlattener(t, testTranslations)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(out, "messages"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	en, err := os.ReadFile(filepath.Join(out, "messages", "en.json"))
	require.NoError(t, err)
	expectedEN := `{
  "fields.name.helperText": {
    "description": "Helper text for field 'name'",
    "message": "Common name for this place."
  },
  "fields.name.label": {
    "description": "Label for field 'name'",
    "message": "Name"
  },
  "presets.building.name": {
    "description": "The name of preset 'building'",
    "message": "Building"
  },
  "presets.river.name": {
    "description": "The name of preset 'river'",
    "message": "River"
  }
}`
	assert.Equal(t, expectedEN, string(en))

	fr, err := os.ReadFile(filepath.Join(out, "messages", "fr.json"))
	require.NoError(t, err)
	var frMsgs map[string]Entry
	require.NoError(t, json.Unmarshal(fr, &frMsgs))
	assert.Equal(t, Entry{Description: "The name of category 'water'", Message: "Eau"}, frMsgs["categories.water.name"])
	assert.Equal(t, Entry{Description: "Helper text for field 'name'", Message: "Nom <commun> du lieu."}, frMsgs["fields.name.helperText"])
	assert.Contains(t, string(fr), `"message": "Bâtiment"`)
}

func TestFlattener_StableOutput(t *testing.T) {
	first, err := runFlattener(t, testTranslations)
	require.NoError(t, err)
	second, err := runFlattener(t, testTranslations)
	require.NoError(t, err)

	for _, lang := range []string{"en.json", "fr.json"} {
		a, err := os.ReadFile(filepath.Join(first, "messages", lang))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, "messages", lang))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	}
}

func TestFlattener_AbsentFileIsNoOp(t *testing.T) {
	out, err := runFlattener(t, "")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(out, "messages"))
}

func TestFlattener_EmptyTreeCreatesDirectory(t *testing.T) {
	out, err := runFlattener(t, `{}`)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(out, "messages"))
}

func TestFlattener_Malformed(t *testing.T) {
	_, err := runFlattener(t, `{"en": [1, 2]}`)
	require.Error(t, err)

	_, err = runFlattener(t, `not json`)
	require.Error(t, err)
}

func TestNewFlattener(t *testing.T) {
	assert.Panics(t, func() { NewFlattener(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewFlattener(filesystem.NewOSFileSystem(), nil) })
	assert.Equal(t, "translations", NewFlattener(filesystem.NewOSFileSystem(), logging.NewNullLogger()).Name())
}
