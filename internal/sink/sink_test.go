package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"logscope/internal/export"
	"logscope/internal/storage"
	storeMocks "logscope/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testDocument() *export.Document {
	return &export.Document{
		Filename:    "export_data_2023-10-28_10-30-15.csv",
		ContentType: export.ContentTypeCSV,
		Body:        []byte("Event Id\n4625"),
	}
}

func TestObjectSink_Save(t *testing.T) {
	ctx := context.Background()
	doc := testDocument()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Put", ctx, "exports/"+doc.Filename, mock.Anything, storage.PutObjectOptions{
			Size:        int64(len(doc.Body)),
			ContentType: export.ContentTypeCSV,
		}).Return(storage.ObjectInfo{Key: "exports/" + doc.Filename, Size: int64(len(doc.Body))}, nil)
		mStore.On("PresignGet", ctx, "exports/"+doc.Filename, 15*time.Minute).
			Return("https://minio.local/exports/"+doc.Filename+"?sig=abc", nil)

		s := NewObjectSink(mStore, "", 0)
		art, err := s.Save(ctx, doc)

		require.NoError(t, err)
		assert.Equal(t, "exports/"+doc.Filename, art.Key)
		assert.Contains(t, art.URL, doc.Filename)
		assert.Equal(t, int64(len(doc.Body)), art.Size)
		assert.False(t, art.ExpiresAt.IsZero())
		mStore.AssertExpectations(t)
	})

	t.Run("put error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("storage down"))

		s := NewObjectSink(mStore, "", 0)
		art, err := s.Save(ctx, doc)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "save export to storage")
		assert.Nil(t, art)
	})

	t.Run("presign error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "exports/x"}, nil)
		mStore.On("PresignGet", ctx, mock.Anything, mock.Anything).
			Return("", errors.New("presign fail"))

		s := NewObjectSink(mStore, "", 0)
		art, err := s.Save(ctx, doc)

		assert.Error(t, err)
		assert.Nil(t, art)
	})
}

func TestFilesystemSink_Save(t *testing.T) {
	ctx := context.Background()
	doc := testDocument()

	t.Run("writes document under its filename", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(filepath.Join(dir, "exports"))

		art, err := s.Save(ctx, doc)

		require.NoError(t, err)
		assert.Equal(t, doc.Filename, art.Key)
		assert.Equal(t, int64(len(doc.Body)), art.Size)
		assert.True(t, art.ExpiresAt.IsZero())

		data, err := os.ReadFile(art.URL)
		require.NoError(t, err)
		assert.Equal(t, doc.Body, data)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		s := NewFilesystemSink(t.TempDir())
		art, err := s.Save(cctx, doc)

		assert.Error(t, err)
		assert.Nil(t, art)
	})
}
