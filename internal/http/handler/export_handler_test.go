package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"logscope/internal/export"
	"logscope/internal/repository"
	"logscope/internal/service"
	serviceMocks "logscope/internal/service/mocks"
	"logscope/internal/sink"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func csvDocument() *export.Document {
	return &export.Document{
		Filename:    "export_data_2023-10-28_10-30-15.csv",
		ContentType: export.ContentTypeCSV,
		Body:        []byte("Event Id,Source Ip\n4625,\"10.0.0,5\""),
	}
}

func TestExportEvents(t *testing.T) {
	mockSvc := new(serviceMocks.MockEventService)
	app := fiber.New()
	app.Get("/events/export", ExportEvents(mockSvc))

	t.Run("csv attachment", func(t *testing.T) {
		doc := csvDocument()
		mockSvc.On("Export", mock.Anything, service.FormatCSV, repository.SearchQuery{
			Severity: "high",
			Limit:    50,
			Offset:   0,
		}).Return(doc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/events/export?format=csv&severity=high", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, export.ContentTypeCSV, resp.Header.Get(fiber.HeaderContentType))
		assert.Equal(t, `attachment; filename="export_data_2023-10-28_10-30-15.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, doc.Body, body)
		mockSvc.AssertExpectations(t)
	})

	t.Run("format defaults to csv", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, service.FormatCSV, mock.Anything).
			Return(csvDocument(), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/events/export", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty result is 204", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, service.FormatJSON, mock.Anything).
			Return(nil, export.ErrNoRecords).Once()

		req := httptest.NewRequest(http.MethodGet, "/events/export?format=json", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown format", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, "xlsx", mock.Anything).
			Return(nil, service.ErrUnknownFormat).Once()

		req := httptest.NewRequest(http.MethodGet, "/events/export?format=xlsx", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_FORMAT", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateExport(t *testing.T) {
	mockSvc := new(serviceMocks.MockEventService)
	app := fiber.New()
	app.Post("/exports", CreateExport(mockSvc))

	postJSON := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/exports", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		art := &sink.Artifact{
			Key:       "exports/export_data_2023-10-28_10-30-15.json",
			URL:       "https://minio.local/exports/export_data_2023-10-28_10-30-15.json?sig=abc",
			Size:      42,
			ExpiresAt: time.Now().Add(15 * time.Minute),
		}
		from := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
		mockSvc.On("ExportAndStore", mock.Anything, service.FormatJSON, repository.SearchQuery{
			Text: "failed",
			From: from,
		}).Return(art, nil).Once()

		resp := postJSON(`{"format":"json","query":{"q":"failed","from":"2023-10-01T00:00:00Z"}}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result sink.Artifact
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, art.Key, result.Key)
		assert.Equal(t, art.URL, result.URL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("sink unavailable", func(t *testing.T) {
		mockSvc.On("ExportAndStore", mock.Anything, service.FormatCSV, mock.Anything).
			Return(nil, service.ErrSinkUnavailable).Once()

		resp := postJSON(`{"format":"csv"}`)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "EXPORT_UNAVAILABLE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty result is 204", func(t *testing.T) {
		mockSvc.On("ExportAndStore", mock.Anything, service.FormatCSV, mock.Anything).
			Return(nil, export.ErrNoRecords).Once()

		resp := postJSON(`{"format":"csv"}`)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		resp := postJSON("{not json")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})

	t.Run("invalid from timestamp", func(t *testing.T) {
		resp := postJSON(`{"format":"csv","query":{"from":"last week"}}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_FROM", res.Error.Code)
	})
}
