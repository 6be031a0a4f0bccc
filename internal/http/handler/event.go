package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"logscope/internal/model"
	"logscope/internal/repository"
	"logscope/internal/service"
)

// HealthCheck returns a handler that verifies DB connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// paramError carries a machine-readable code for a bad query parameter.
type paramError struct {
	code    string
	message string
}

func (e *paramError) Error() string { return e.message }

// parseSearchQuery reads the dashboard search filters from the query string.
func parseSearchQuery(c *fiber.Ctx) (repository.SearchQuery, *paramError) {
	q := repository.SearchQuery{
		Text:     c.Query("q"),
		Severity: c.Query("severity"),
		Source:   c.Query("source"),
	}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, &paramError{"INVALID_FROM", "invalid from timestamp, want RFC3339"}
		}
		q.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, &paramError{"INVALID_TO", "invalid to timestamp, want RFC3339"}
		}
		q.To = t
	}

	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil {
		return q, &paramError{"INVALID_LIMIT", "invalid limit"}
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return q, &paramError{"INVALID_OFFSET", "invalid offset"}
	}
	q.Limit = limit
	q.Offset = offset

	return q, nil
}

// SearchEvents lists events matching the search filters with pagination.
func SearchEvents(svc service.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, perr := parseSearchQuery(c)
		if perr != nil {
			return writeError(c, fiber.StatusBadRequest, perr.code, perr.message)
		}

		res, err := svc.Search(c.UserContext(), q)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetEvent returns one event by ID.
func GetEvent(svc service.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		ev, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "event not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(ev)
	}
}

// IngestEvent stores a new event from a JSON body.
func IngestEvent(svc service.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ev model.Event
		if err := c.BodyParser(&ev); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid event payload")
		}

		stored, err := svc.Ingest(c.UserContext(), &ev)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// DeleteEvent removes an event by ID.
func DeleteEvent(svc service.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "event not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
