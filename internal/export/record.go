package export

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single named value inside a Record.
type Field struct {
	Key   string
	Value any
}

// Record is one exportable row: an ordered list of fields. Order matters —
// the CSV assembler derives its header from the first record's field order,
// and JSON output preserves each record's own field order verbatim.
type Record []Field

// Get returns the value for key and whether the key is present.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in record order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// MarshalJSON encodes the record as a JSON object preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", f.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal value for %q: %w", f.Key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the record, keeping the key order
// found in the input. Nested values decode to the usual any-typed shapes
// (map[string]any, []any, float64, string, bool, nil).
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}

	out := Record{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record: expected string key, got %v", keyTok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("record: decode value for %q: %w", key, err)
		}
		out = append(out, Field{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}
