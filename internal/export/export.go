package export

import "errors"

// Package export converts in-memory record collections into downloadable
// CSV or JSON documents. It holds no state between calls; every document is
// constructed, handed off, and discarded.

const (
	// DefaultPrefix is the filename prefix used when none is configured.
	DefaultPrefix = "export_data"

	ContentTypeCSV  = "text/csv;charset=utf-8"
	ContentTypeJSON = "application/json;charset=utf-8"
)

// ErrNoRecords is returned by the assemblers when the input collection is
// empty. Callers are expected to branch on it (skip, 204, log) rather than
// treat it as a failure.
var ErrNoRecords = errors.New("export: no records")

// Document is a finished export artifact: an immutable body plus the
// filename and content type it should be delivered under.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Exporter assembles export documents. The zero value is not usable;
// construct with NewExporter.
type Exporter struct {
	namer *Namer
}

// NewExporter creates an Exporter that names its documents through namer.
// A nil namer falls back to the default prefix and the real clock.
func NewExporter(namer *Namer) *Exporter {
	if namer == nil {
		namer = NewNamer("")
	}
	return &Exporter{namer: namer}
}
