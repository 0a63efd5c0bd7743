package handlers

import (
	"errors"
	"io"
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/models"
	"stockroom/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BatchHandlers handles bulk mutation HTTP requests
type BatchHandlers struct {
	batchService services.BatchService
}

func NewBatchHandlers(batchService services.BatchService) *BatchHandlers {
	return &BatchHandlers{batchService: batchService}
}

// BatchDeleteRequest carries the selected record ids.
type BatchDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *BatchHandlers) BatchDelete(c echo.Context) error {
	var req BatchDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if len(req.IDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No records selected")
	}

	deleted, err := h.batchService.BatchDelete(c.Request().Context(), common.UserEmail(c), req.IDs)
	if err != nil {
		if errors.Is(err, services.ErrEmptyEditor) {
			return common.SendUnauthorizedError(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete records")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"deleted": deleted})
}

// BatchEditRequest carries the edited working copies.
type BatchEditRequest struct {
	Records []*models.Record `json:"records"`
}

func (h *BatchHandlers) BatchEdit(c echo.Context) error {
	var req BatchEditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if len(req.Records) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No records submitted")
	}

	changed, err := h.batchService.BatchEdit(c.Request().Context(), common.UserEmail(c), req.Records)
	if err != nil {
		if errors.Is(err, services.ErrEmptyEditor) {
			return common.SendUnauthorizedError(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to edit records")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"changed": changed})
}

// ImportCSV accepts a multipart upload under the "file" field.
func (h *BatchHandlers) ImportCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "CSV file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to open uploaded file")
	}
	defer file.Close()

	result, err := h.batchService.ImportCSV(c.Request().Context(), common.UserEmail(c), file)
	if err != nil {
		if errors.Is(err, services.ErrEmptyEditor) {
			return common.SendUnauthorizedError(c)
		}
		return common.SendClientError(c, "Failed to import CSV: "+err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// ImportImages accepts a multipart upload with any number of files under the
// "images" field. Filenames are matched against part numbers.
func (h *BatchHandlers) ImportImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image files are required")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Image files are required")
	}

	var assets []models.ImageAsset
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to open uploaded file")
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
		}
		assets = append(assets, models.ImageAsset{Filename: fileHeader.Filename, Data: data})
	}

	result, err := h.batchService.MatchImages(c.Request().Context(), common.UserEmail(c), assets)
	if err != nil {
		if errors.Is(err, services.ErrEmptyEditor) {
			return common.SendUnauthorizedError(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to import images")
	}
	return c.JSON(http.StatusOK, result)
}
