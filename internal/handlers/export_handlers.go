package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"stockroom/internal/csvio"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// ExportHandlers serves catalog CSV downloads
type ExportHandlers struct {
	catalogService services.CatalogService
}

func NewExportHandlers(catalogService services.CatalogService) *ExportHandlers {
	return &ExportHandlers{catalogService: catalogService}
}

// ExportCatalog streams the whole catalog as a BOM-prefixed CSV in default
// display order.
func (h *ExportHandlers) ExportCatalog(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.catalogService.ExportCSV(c.Request().Context(), &buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export catalog")
	}

	filename := fmt.Sprintf("inventory_%s.csv", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportTemplate serves the import template with annotated headers and one
// example row.
func (h *ExportHandlers) ExportTemplate(c echo.Context) error {
	var buf bytes.Buffer
	if err := csvio.WriteTemplate(&buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build template")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="import_template.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
