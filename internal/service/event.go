package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"logscope/internal/export"
	"logscope/internal/model"
	"logscope/internal/repository"
	"logscope/internal/sink"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("event not found")
	ErrEventNil        = errors.New("event is nil")
	ErrUnknownFormat   = errors.New("unknown export format")
	ErrSinkUnavailable = errors.New("no artifact sink configured")
)

// EventListResult is the service-level DTO for paginated search results.
type EventListResult struct {
	Items []model.Event `json:"data"`
	Total int           `json:"total"`
}

// EventService defines the use cases for exploring and exporting security events.
type EventService interface {
	// Ingest stores a new event. ID and CreatedAt are assigned here; a zero
	// OccurredAt falls back to ingestion time.
	Ingest(ctx context.Context, ev *model.Event) (*model.Event, error)

	// Get returns a single event by its ID.
	Get(ctx context.Context, id string) (*model.Event, error)

	// Search returns events matching the query with a total count.
	Search(ctx context.Context, q repository.SearchQuery) (*EventListResult, error)

	// Delete removes an event by ID.
	Delete(ctx context.Context, id string) error

	// Export materializes all events matching the query (up to the
	// configured row cap) and assembles them into a document in the given
	// format ("csv" or "json"). An empty result set yields
	// export.ErrNoRecords, which callers treat as a quiet no-op.
	Export(ctx context.Context, format string, q repository.SearchQuery) (*export.Document, error)

	// ExportAndStore runs Export and saves the document through the
	// configured artifact sink, returning the saved location.
	ExportAndStore(ctx context.Context, format string, q repository.SearchQuery) (*sink.Artifact, error)
}

// eventService is a concrete implementation of EventService.
type eventService struct {
	repo      repository.EventRepository
	exporter  *export.Exporter
	artifacts sink.Sink // nil when no sink is configured
	maxRows   int
}

// NewEventService constructs a new EventService. artifacts may be nil, in
// which case ExportAndStore reports ErrSinkUnavailable.
func NewEventService(repo repository.EventRepository, exporter *export.Exporter, artifacts sink.Sink, maxRows int) EventService {
	if exporter == nil {
		exporter = export.NewExporter(nil)
	}
	if maxRows <= 0 {
		maxRows = 10000
	}
	return &eventService{repo: repo, exporter: exporter, artifacts: artifacts, maxRows: maxRows}
}

func (s *eventService) Ingest(ctx context.Context, ev *model.Event) (*model.Event, error) {
	if ev == nil {
		return nil, ErrEventNil
	}

	now := time.Now().UTC()
	ev.ID = uuid.NewString()
	ev.CreatedAt = now
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = now
	}
	if ev.Severity == "" {
		ev.Severity = "info"
	}

	return s.repo.Insert(ctx, ev)
}

// Get returns an event by ID.
func (s *eventService) Get(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	ev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

// Search returns paginated events without exposing repository types.
func (s *eventService) Search(ctx context.Context, q repository.SearchQuery) (*EventListResult, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	res, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return &EventListResult{Items: res.Items, Total: res.Total}, nil
}

// Delete removes an event after confirming it exists.
func (s *eventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
