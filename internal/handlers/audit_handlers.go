package handlers

import (
	"net/http"
	"strconv"

	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// AuditHandlers handles audit trail HTTP requests
type AuditHandlers struct {
	auditService services.AuditService
}

func NewAuditHandlers(auditService services.AuditService) *AuditHandlers {
	return &AuditHandlers{auditService: auditService}
}

// ListAuditLogs returns the newest entries first. The page size is capped
// server-side regardless of the requested limit.
func (h *AuditHandlers) ListAuditLogs(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = parsed
	}

	entries, err := h.auditService.List(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list audit logs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
