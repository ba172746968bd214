package fields

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"
)

// Dialect identifies the schema convention a field definition follows.
type Dialect int

const (
	// DialectLegacy is the Mapeo convention: key, placeholder, string options.
	DialectLegacy Dialect = iota
	// DialectCurrent is the CoMapeo convention: tagKey, helperText, {label, value} options.
	DialectCurrent
)

func (d Dialect) String() string {
	switch d {
	case DialectLegacy:
		return "legacy"
	case DialectCurrent:
		return "current"
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

// Property names that differ between dialects.
const (
	keyLegacy      = "key"
	keyTag         = "tagKey"
	keyPlaceholder = "placeholder"
	keyHelperText  = "helperText"
	keyOptions     = "options"
	keyType        = "type"
	keyUniversal   = "universal"
	keyLabel       = "label"
	keyValue       = "value"
)

var typeRenames = map[string]string{
	"textarea":    "text",
	"select_one":  "selectOne",
	"select_many": "selectMultiple",
}

// Field is a field definition tagged with its detected dialect.
type Field struct {
	Dialect Dialect
	props   *orderedmap.OrderedMap
}

// Parse decodes a JSON object into a Field and detects its dialect.
func Parse(data []byte) (*Field, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("invalid field definition: expected a JSON object")
	}
	props := orderedmap.New()
	props.SetEscapeHTML(false)
	if err := json.Unmarshal(data, props); err != nil {
		return nil, fmt.Errorf("invalid field definition: %w", err)
	}
	return &Field{Dialect: Detect(props), props: props}, nil
}

// Detect reports the dialect of a decoded field definition. A definition is
// current if it carries tagKey, or if its first option is a structured pair
// rather than a bare value.
func Detect(props *orderedmap.OrderedMap) Dialect {
	if _, ok := props.Get(keyTag); ok {
		return DialectCurrent
	}
	raw, ok := props.Get(keyOptions)
	if !ok {
		return DialectLegacy
	}
	options, ok := raw.([]interface{})
	if !ok || len(options) == 0 {
		return DialectLegacy
	}
	if isObject(options[0]) {
		return DialectCurrent
	}
	return DialectLegacy
}

// Get returns the value stored under key.
func (f *Field) Get(key string) (interface{}, bool) {
	return f.props.Get(key)
}

// Keys returns property names in document order.
func (f *Field) Keys() []string {
	return f.props.Keys()
}

// MarshalJSON encodes the field compactly, in property order, without HTML escaping.
func (f *Field) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, f.props); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isObject(v interface{}) bool {
	switch v.(type) {
	case orderedmap.OrderedMap, *orderedmap.OrderedMap, map[string]interface{}:
		return true
	}
	return false
}
