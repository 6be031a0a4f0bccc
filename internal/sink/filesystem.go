package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"logscope/internal/export"
)

// FilesystemSink writes export documents to a local directory. It is used
// in non-interactive deployments where no object storage is configured.
type FilesystemSink struct {
	dir string
}

// NewFilesystemSink creates a sink writing into dir (created on first save).
func NewFilesystemSink(dir string) *FilesystemSink {
	return &FilesystemSink{dir: dir}
}

var _ Sink = (*FilesystemSink)(nil)

// Save writes the document body under its generated filename.
func (s *FilesystemSink) Save(ctx context.Context, doc *export.Document) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	target := filepath.Join(s.dir, doc.Filename)
	if err := os.WriteFile(target, doc.Body, 0o644); err != nil {
		return nil, fmt.Errorf("write export file: %w", err)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}

	return &Artifact{
		Key:  doc.Filename,
		URL:  abs,
		Size: int64(len(doc.Body)),
	}, nil
}
