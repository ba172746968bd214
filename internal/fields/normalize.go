package fields

import (
	"github.com/iancoleman/orderedmap"
)

// Normalize returns the current-dialect form of f. Current fields come back
// as an unmodified copy, so Normalize is idempotent. The input is never mutated.
func Normalize(f *Field) *Field {
	if f.Dialect == DialectCurrent {
		return &Field{Dialect: DialectCurrent, props: copyProps(f.props)}
	}

	_, hasHelperText := f.props.Get(keyHelperText)

	out := orderedmap.New()
	out.SetEscapeHTML(false)
	for _, k := range f.props.Keys() {
		v, _ := f.props.Get(k)
		switch k {
		case keyLegacy:
			out.Set(keyTag, v)
		case keyPlaceholder:
			if hasHelperText {
				out.Set(k, v)
			} else {
				out.Set(keyHelperText, v)
			}
		case keyType:
			if name, ok := v.(string); ok {
				if renamed, ok := typeRenames[name]; ok {
					v = renamed
				}
			}
			out.Set(k, v)
		case keyOptions:
			out.Set(k, convertOptions(v))
		default:
			out.Set(k, v)
		}
	}
	if _, ok := out.Get(keyUniversal); !ok {
		out.Set(keyUniversal, false)
	}
	return &Field{Dialect: DialectCurrent, props: out}
}

// NormalizeJSON parses, normalizes and re-encodes a single field definition.
func NormalizeJSON(data []byte) ([]byte, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Normalize(f).MarshalJSON()
}

func convertOptions(v interface{}) interface{} {
	options, ok := v.([]interface{})
	if !ok {
		return v
	}
	converted := make([]interface{}, len(options))
	for i, opt := range options {
		if isObject(opt) {
			converted[i] = opt
			continue
		}
		pair := orderedmap.New()
		pair.SetEscapeHTML(false)
		pair.Set(keyLabel, opt)
		pair.Set(keyValue, opt)
		converted[i] = pair
	}
	return converted
}

func copyProps(src *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	dst := orderedmap.New()
	dst.SetEscapeHTML(false)
	for _, k := range src.Keys() {
		v, _ := src.Get(k)
		dst.Set(k, v)
	}
	return dst
}
