package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"logscope/internal/export"
	"logscope/internal/repository"
	"logscope/internal/service"
)

// ExportEvents assembles the current search result as CSV or JSON and sends
// it inline as a download attachment. An empty result set is a quiet no-op
// answered with 204 so the dashboard can tell nothing was produced.
func ExportEvents(svc service.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := c.Query("format", service.FormatCSV)

		q, perr := parseSearchQuery(c)
		if perr != nil {
			return writeError(c, fiber.StatusBadRequest, perr.code, perr.message)
		}

		doc, err := svc.Export(c.UserContext(), format, q)
		if err != nil {
			switch {
			case errors.Is(err, export.ErrNoRecords):
				return c.SendStatus(fiber.StatusNoContent)
			case errors.Is(err, service.ErrUnknownFormat):
				return writeError(c, fiber.StatusBadRequest, "INVALID_FORMAT", "format must be csv or json")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
		return c.Send(doc.Body)
	}
}

// createExportRequest is the body of POST /exports.
type createExportRequest struct {
	Format string `json:"format"`
	Query  struct {
		Q        string `json:"q"`
		Severity string `json:"severity"`
		Source   string `json:"source"`
		From     string `json:"from"`
		To       string `json:"to"`
	} `json:"query"`
}

// CreateExport assembles an export, saves it through the artifact sink and
// returns the saved location with its download link.
func CreateExport(svc service.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createExportRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid export request")
		}

		q := repository.SearchQuery{
			Text:     req.Query.Q,
			Severity: req.Query.Severity,
			Source:   req.Query.Source,
		}
		if req.Query.From != "" {
			t, err := time.Parse(time.RFC3339, req.Query.From)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_FROM", "invalid from timestamp, want RFC3339")
			}
			q.From = t
		}
		if req.Query.To != "" {
			t, err := time.Parse(time.RFC3339, req.Query.To)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_TO", "invalid to timestamp, want RFC3339")
			}
			q.To = t
		}

		format := req.Format
		if format == "" {
			format = service.FormatCSV
		}

		art, err := svc.ExportAndStore(c.UserContext(), format, q)
		if err != nil {
			switch {
			case errors.Is(err, export.ErrNoRecords):
				return c.SendStatus(fiber.StatusNoContent)
			case errors.Is(err, service.ErrUnknownFormat):
				return writeError(c, fiber.StatusBadRequest, "INVALID_FORMAT", "format must be csv or json")
			case errors.Is(err, service.ErrSinkUnavailable):
				return writeError(c, fiber.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "no export storage configured")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(art)
	}
}
