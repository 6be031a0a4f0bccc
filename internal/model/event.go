package model

import "time"

// Package model contains domain models/data structures.
// Keep it free of persistence and transport dependencies.

// Event is a single security log entry as explored on the dashboard.
// EventID is the source-specific numeric code (e.g. Windows 4625 for a
// failed logon); Details carries free-form source fields as JSON.
type Event struct {
	ID         string         `json:"id"`
	EventID    int64          `json:"event_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Source     string         `json:"source"`
	SourceIP   string         `json:"source_ip"`
	Username   string         `json:"username"`
	Severity   string         `json:"severity"`
	Category   string         `json:"category"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
