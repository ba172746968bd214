package metadata

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/digidem/mapeo-config-deconstructor/internal/files/filesystem"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
	"github.com/xeipuuv/gojsonschema"
)

const documentSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1}
  }
}`

var schema *gojsonschema.Schema

func init() {
	var err error
	schema, err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	if err != nil {
		panic("metadata: invalid document schema: " + err.Error())
	}
}

// Metadata is the decoded metadata document. Members other than name are
// not decoded, so their types are never checked.
type Metadata struct {
	Name string `json:"name"`
}

// Reader loads metadata documents through a filesystem provider.
type Reader struct {
	fs filesystem.FileSystemProvider
}

// NewReader creates a Reader. Panics if provider is nil.
func NewReader(provider filesystem.FileSystemProvider) *Reader {
	if provider == nil {
		panic("provider cannot be nil")
	}
	return &Reader{fs: provider}
}

// Read loads metadata.json from dir.
func (r *Reader) Read(dir string) (*Metadata, error) {
	path := filepath.Join(dir, deconstruct.MetadataFile)

	content, err := r.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MetadataError{
				FilePath: path,
				Message:  "document not found",
				Hint:     "Every package must contain metadata.json with a \"name\" member.",
			}
		}
		return nil, &MetadataError{FilePath: path, Message: "failed to read document", Cause: err}
	}

	return Parse(path, content)
}

// Parse validates and decodes a metadata document. path is used only in errors.
func Parse(path string, content []byte) (*Metadata, error) {
	if !json.Valid(content) {
		return nil, &MetadataError{
			FilePath: path,
			Message:  "document is not valid JSON",
		}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, &MetadataError{FilePath: path, Message: "failed to validate document", Cause: err}
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return nil, &MetadataError{
			FilePath: path,
			Field:    fieldName(first),
			Message:  first.Description(),
			Hint:     "metadata.json must be an object with a non-empty string \"name\".",
		}
	}

	var md Metadata
	if err := json.Unmarshal(content, &md); err != nil {
		return nil, &MetadataError{FilePath: path, Message: "failed to decode document", Cause: err}
	}
	return &md, nil
}

// fieldName reports the member a schema error refers to. Missing required
// members are reported against the root, so the property name is taken from
// the error details instead.
func fieldName(re gojsonschema.ResultError) string {
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			return prop
		}
	}
	field := re.Field()
	if field == "(root)" {
		return ""
	}
	return strings.TrimPrefix(field, "(root).")
}
