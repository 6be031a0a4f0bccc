package sink

import (
	"context"
	"time"

	"logscope/internal/export"
)

// Package sink is the delivery boundary for finished export documents: it
// hands an assembled artifact to its destination (object storage, local
// filesystem) and reports where it landed. The assemblers themselves know
// nothing about delivery.

// Artifact describes a saved export document.
type Artifact struct {
	// Key is the destination-specific identifier (object key or file path).
	Key string `json:"key"`
	// URL is where the artifact can be downloaded from. For object storage
	// this is a presigned link; for the filesystem it is the absolute path.
	URL  string `json:"url"`
	Size int64  `json:"size"`
	// ExpiresAt is zero when the location does not expire.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Sink saves one export document. Implementations must not retain the
// document after Save returns.
type Sink interface {
	Save(ctx context.Context, doc *export.Document) (*Artifact, error)
}
