package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"logscope/internal/export"
	"logscope/internal/model"
	"logscope/internal/repository"
	"logscope/internal/sink"
)

// Export formats accepted by the export use cases.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

func (s *eventService) Export(ctx context.Context, format string, q repository.SearchQuery) (*export.Document, error) {
	if format != FormatCSV && format != FormatJSON {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	// Exports operate on a fully materialized result set; the row cap keeps
	// that bounded. Pagination params from the search UI are ignored here.
	q.Limit = s.maxRows
	q.Offset = 0

	res, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search events for export: %w", err)
	}

	records := eventRecords(res.Items)

	var doc *export.Document
	if format == FormatCSV {
		doc, err = s.exporter.CSV(records)
	} else {
		doc, err = s.exporter.JSON(records)
	}
	if err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			logExportSkip("no_records", format)
		}
		return nil, err
	}
	return doc, nil
}

func (s *eventService) ExportAndStore(ctx context.Context, format string, q repository.SearchQuery) (*sink.Artifact, error) {
	if s.artifacts == nil {
		logExportSkip("sink_unavailable", format)
		return nil, ErrSinkUnavailable
	}

	doc, err := s.Export(ctx, format, q)
	if err != nil {
		return nil, err
	}
	return s.artifacts.Save(ctx, doc)
}

// eventRecords projects events into ordered export records. The field order
// here is the CSV column order.
func eventRecords(events []model.Event) []export.Record {
	records := make([]export.Record, 0, len(events))
	for _, ev := range events {
		var details any
		if ev.Details != nil {
			details = ev.Details
		}
		records = append(records, export.Record{
			{Key: "id", Value: ev.ID},
			{Key: "event_id", Value: ev.EventID},
			{Key: "occurred_at", Value: ev.OccurredAt},
			{Key: "source", Value: ev.Source},
			{Key: "source_ip", Value: ev.SourceIP},
			{Key: "username", Value: ev.Username},
			{Key: "severity", Value: ev.Severity},
			{Key: "category", Value: ev.Category},
			{Key: "message", Value: ev.Message},
			{Key: "details", Value: details},
		})
	}
	return records
}

// logExportSkip emits the diagnostic for exports that quietly did nothing.
func logExportSkip(reason, format string) {
	entry := map[string]any{
		"ts":     time.Now().UTC().Format(time.RFC3339Nano),
		"level":  "info",
		"msg":    "export_skipped",
		"reason": reason,
		"format": format,
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
