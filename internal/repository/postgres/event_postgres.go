package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"logscope/internal/model"
	"logscope/internal/repository"
)

// EventPostgres is a PostgreSQL implementation of repository.EventRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type EventPostgres struct {
	db *sql.DB
}

// NewEventPostgres creates a new EventPostgres repository.
func NewEventPostgres(db *sql.DB) *EventPostgres {
	return &EventPostgres{db: db}
}

var _ repository.EventRepository = (*EventPostgres)(nil)

const eventColumns = `id, event_id, occurred_at, source, source_ip, username, severity, category, message, details, created_at`

// Insert stores a new event row and returns the stored record.
func (r *EventPostgres) Insert(ctx context.Context, ev *model.Event) (*model.Event, error) {
	const q = `
		INSERT INTO security_events (id, event_id, occurred_at, source, source_ip, username, severity, category, message, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + eventColumns

	details, err := marshalDetails(ev.Details)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, q,
		ev.ID,
		ev.EventID,
		ev.OccurredAt,
		ev.Source,
		ev.SourceIP,
		ev.Username,
		ev.Severity,
		ev.Category,
		ev.Message,
		details,
		ev.CreatedAt,
	)
	return scanEvent(row)
}

// FindByID fetches a single event by its ID.
func (r *EventPostgres) FindByID(ctx context.Context, id string) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM security_events WHERE id = $1`
	return scanEvent(r.db.QueryRowContext(ctx, q, id))
}

// Search returns events matching the filter with LIMIT/OFFSET pagination
// and a total count over the same filter.
func (r *EventPostgres) Search(ctx context.Context, q repository.SearchQuery) (*repository.PageResult[model.Event], error) {
	where, args := buildWhere(q)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM security_events"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	list := fmt.Sprintf(
		"SELECT "+eventColumns+" FROM security_events%s ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, list, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Event]{Items: items, Total: total}, nil
}

// Delete removes an event by ID. It does not return an error if the row does not exist.
func (r *EventPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM security_events WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// buildWhere assembles the WHERE clause for the active filters with
// positional parameters starting at $1.
func buildWhere(q repository.SearchQuery) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.Text != "" {
		add("message ILIKE $%d", "%"+q.Text+"%")
	}
	if q.Severity != "" {
		add("severity = $%d", q.Severity)
	}
	if q.Source != "" {
		add("source = $%d", q.Source)
	}
	if !q.From.IsZero() {
		add("occurred_at >= $%d", q.From)
	}
	if !q.To.IsZero() {
		add("occurred_at <= $%d", q.To)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var ev model.Event
	var details []byte
	if err := row.Scan(
		&ev.ID,
		&ev.EventID,
		&ev.OccurredAt,
		&ev.Source,
		&ev.SourceIP,
		&ev.Username,
		&ev.Severity,
		&ev.Category,
		&ev.Message,
		&details,
		&ev.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &ev.Details); err != nil {
			return nil, fmt.Errorf("decode details for event %s: %w", ev.ID, err)
		}
	}
	return &ev, nil
}

// marshalDetails encodes the free-form details map for the JSONB column.
// A nil map is stored as SQL NULL rather than the JSON literal "null".
func marshalDetails(details map[string]any) (any, error) {
	if details == nil {
		return nil, nil
	}
	b, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encode details: %w", err)
	}
	return b, nil
}
