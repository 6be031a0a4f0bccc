package export

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"
)

// CSV assembles a comma-delimited document from the record collection.
// The header row comes from the first record's field order, with each key
// humanized (underscores to spaces, words title-cased) and escaped like a
// data cell. Records missing a header key render an empty cell; fields not
// in the header are omitted. Rows are joined with \n and the document ends
// without a trailing newline. Empty input returns ErrNoRecords.
func (e *Exporter) CSV(records []Record) (*Document, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	keys := records[0].Keys()

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeValue(humanizeHeader(k)))
	}

	for _, rec := range records {
		b.WriteByte('\n')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			v, ok := rec.Get(k)
			if !ok || v == nil {
				continue
			}
			if isStructured(v) {
				b.WriteString(EscapeValue(marshalCell(v)))
				continue
			}
			b.WriteString(EscapeValue(v))
		}
	}

	return &Document{
		Filename:    e.namer.Filename("csv"),
		ContentType: ContentTypeCSV,
		Body:        []byte(b.String()),
	}, nil
}

// isStructured reports whether the value is a nested collection that must be
// serialized to JSON before CSV escaping. time.Time stays scalar.
func isStructured(v any) bool {
	if _, ok := v.(time.Time); ok {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return false
	}
}

// marshalCell renders a structured value as compact JSON, falling back to
// the default string form for values JSON cannot represent.
func marshalCell(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// humanizeHeader turns a snake_case field name into a display header:
// underscores become spaces and the first letter of each word is upper-cased.
func humanizeHeader(key string) string {
	runes := []rune(strings.ReplaceAll(key, "_", " "))
	for i := range runes {
		if i == 0 || runes[i-1] == ' ' {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}
