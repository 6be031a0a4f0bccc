package repository

import (
	"context"
	"time"

	"logscope/internal/model"
)

// EventRepository defines data access for security events using SQL only.
// No business logic here — strictly persistence operations.
type EventRepository interface {
	// Insert stores a new event record and returns the stored row.
	Insert(ctx context.Context, ev *model.Event) (*model.Event, error)

	// FindByID returns an event by its ID.
	FindByID(ctx context.Context, id string) (*model.Event, error)

	// Search returns events matching the query with limit/offset pagination
	// and a total rows count for the same filter.
	Search(ctx context.Context, q SearchQuery) (*PageResult[model.Event], error)

	// Delete removes an event by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}

// SearchQuery holds the dashboard's search filters plus pagination. Zero
// values mean "no filter" for the respective field.
type SearchQuery struct {
	Text     string
	Severity string
	Source   string
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
