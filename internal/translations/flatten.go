// Package translations flattens the nested per-language translation tree
// into one flat, sorted message file per language.
package translations

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Tree maps a language code to its translations.
type Tree map[string]Language

// Language holds the translated strings of one language. Every section and
// every property within an entry is optional.
type Language struct {
	Presets    map[string]NameText  `json:"presets,omitempty"`
	Fields     map[string]FieldText `json:"fields,omitempty"`
	Categories map[string]NameText  `json:"categories,omitempty"`
}

// NameText is a translated preset or category.
type NameText struct {
	Name string `json:"name,omitempty"`
}

// FieldText is a translated field.
type FieldText struct {
	Label      string `json:"label,omitempty"`
	HelperText string `json:"helperText,omitempty"`
}

// Entry is one flattened message.
type Entry struct {
	Description string `json:"description"`
	Message     string `json:"message"`
}

// Messages is a flat message table keyed by dotted path.
type Messages map[string]Entry

// Flatten builds the message table of one language. A field's helper text
// is only emitted alongside its label.
func Flatten(lang Language) Messages {
	msgs := make(Messages)
	for id, p := range lang.Presets {
		if p.Name != "" {
			msgs["presets."+id+".name"] = Entry{
				Description: fmt.Sprintf("The name of preset '%s'", id),
				Message:     p.Name,
			}
		}
	}
	for id, f := range lang.Fields {
		if f.Label == "" {
			continue
		}
		msgs["fields."+id+".label"] = Entry{
			Description: fmt.Sprintf("Label for field '%s'", id),
			Message:     f.Label,
		}
		if f.HelperText != "" {
			msgs["fields."+id+".helperText"] = Entry{
				Description: fmt.Sprintf("Helper text for field '%s'", id),
				Message:     f.HelperText,
			}
		}
	}
	for id, c := range lang.Categories {
		if c.Name != "" {
			msgs["categories."+id+".name"] = Entry{
				Description: fmt.Sprintf("The name of category '%s'", id),
				Message:     c.Name,
			}
		}
	}
	return msgs
}

// MarshalIndent encodes the table with keys in codepoint order, indented by
// two spaces, without HTML escaping and without a trailing newline.
func (m Messages) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// encoding/json sorts map keys bytewise, which is codepoint order for UTF-8.
	if err := enc.Encode(map[string]Entry(m)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
