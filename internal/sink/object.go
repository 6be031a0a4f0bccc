package sink

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"logscope/internal/export"
	"logscope/internal/storage"
)

const (
	defaultObjectPrefix = "exports"
	defaultLinkTTL      = 15 * time.Minute
)

// ObjectSink saves export documents to S3-compatible object storage and
// returns a presigned, time-limited download link.
type ObjectSink struct {
	store   storage.Storage
	prefix  string
	linkTTL time.Duration
}

// NewObjectSink creates an ObjectSink writing under prefix with presigned
// links valid for linkTTL. Zero values fall back to "exports" and 15 minutes.
func NewObjectSink(store storage.Storage, prefix string, linkTTL time.Duration) *ObjectSink {
	if prefix == "" {
		prefix = defaultObjectPrefix
	}
	if linkTTL <= 0 {
		linkTTL = defaultLinkTTL
	}
	return &ObjectSink{store: store, prefix: prefix, linkTTL: linkTTL}
}

var _ Sink = (*ObjectSink)(nil)

// Save uploads the document body and presigns a GET link for it.
func (s *ObjectSink) Save(ctx context.Context, doc *export.Document) (*Artifact, error) {
	key := path.Join(s.prefix, doc.Filename)

	info, err := s.store.Put(ctx, key, bytes.NewReader(doc.Body), storage.PutObjectOptions{
		Size:        int64(len(doc.Body)),
		ContentType: doc.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("save export to storage: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.linkTTL)
	if err != nil {
		return nil, fmt.Errorf("presign export link: %w", err)
	}

	return &Artifact{
		Key:       info.Key,
		URL:       url,
		Size:      info.Size,
		ExpiresAt: time.Now().Add(s.linkTTL),
	}, nil
}
