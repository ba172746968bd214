package fields

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/iancoleman/orderedmap"
)

// encodeValue writes v as compact JSON. Ordered maps keep their key order,
// which plain encoding/json cannot do for decoded objects.
func encodeValue(buf *bytes.Buffer, v interface{}) error {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return encodeObject(buf, val.Keys(), val.Get)
	case orderedmap.OrderedMap:
		return encodeObject(buf, val.Keys(), val.Get)
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return encodeObject(buf, keys, func(k string) (interface{}, bool) {
			v, ok := val[k]
			return v, ok
		})
	case []interface{}:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return encodeScalar(buf, val)
	}
}

func encodeObject(buf *bytes.Buffer, keys []string, get func(string) (interface{}, bool)) error {
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeScalar(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		v, _ := get(k)
		if err := encodeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeScalar(buf *bytes.Buffer, v interface{}) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
