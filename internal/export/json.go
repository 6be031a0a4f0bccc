package export

import (
	"encoding/json"
	"fmt"
)

// JSON assembles a pretty-printed JSON document (2-space indent) from the
// record collection. Unlike CSV there is no header flattening: every record
// keeps its own keys and nesting. Empty input returns ErrNoRecords.
func (e *Exporter) JSON(records []Record) (*Document, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}

	return &Document{
		Filename:    e.namer.Filename("json"),
		ContentType: ContentTypeJSON,
		Body:        body,
	}, nil
}
