package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"boxtribute/internal/common"
	"boxtribute/internal/models"
	"boxtribute/internal/repositories"
)

// AuditHandlers exposes the batch-operation audit trail.
type AuditHandlers struct {
	auditRepo repositories.BatchAuditRepository
}

func NewAuditHandlers(auditRepo repositories.BatchAuditRepository) *AuditHandlers {
	return &AuditHandlers{auditRepo: auditRepo}
}

// ListAuditLogsRequest represents the query parameters for listing audit
// entries.
type ListAuditLogsRequest struct {
	Operation string `query:"operation"`
	Actor     string `query:"actor"`
	Outcome   string `query:"outcome"`
	From      string `query:"from"`
	To        string `query:"to"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

// ListAuditLogs lists recorded batch invocations, newest first.
func (h *AuditHandlers) ListAuditLogs(c echo.Context) error {
	var req ListAuditLogsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filters := &models.BatchAuditFilters{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Operation != "" {
		filters.Operation = &req.Operation
	}
	if req.Actor != "" {
		filters.Actor = &req.Actor
	}
	if req.Outcome != "" {
		filters.Outcome = &req.Outcome
	}
	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			return common.SendValidationError(c, "from", "from must be RFC3339")
		}
		filters.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			return common.SendValidationError(c, "to", "to must be RFC3339")
		}
		filters.To = &to
	}

	entries, err := h.auditRepo.List(c.Request().Context(), filters)
	if err != nil {
		return common.SendServerError(c, "Failed to list audit entries")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"limit":   filters.Limit,
		"offset":  filters.Offset,
	})
}
