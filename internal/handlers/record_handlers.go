package handlers

import (
	"errors"
	"io"
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/models"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// RecordHandlers handles catalog record HTTP requests
type RecordHandlers struct {
	catalogService services.CatalogService
	recordService  services.RecordService
}

func NewRecordHandlers(catalogService services.CatalogService, recordService services.RecordService) *RecordHandlers {
	return &RecordHandlers{
		catalogService: catalogService,
		recordService:  recordService,
	}
}

// ListRecordsRequest represents query parameters for listing records
type ListRecordsRequest struct {
	Folder     string `query:"folder"`
	Search     string `query:"search"`
	Sort       string `query:"sort"`
	Descending bool   `query:"desc"`
}

// ListRecords returns one view of the catalog: folder-scoped or searched,
// sorted either by the default display order or an explicit column.
func (h *RecordHandlers) ListRecords(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListRecordsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	records, err := h.catalogService.View(ctx, services.CatalogQuery{
		Folder:     req.Folder,
		Search:     req.Search,
		SortColumn: req.Sort,
		Descending: req.Descending,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list records")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// ListFolders returns the derived folder index with record counts.
func (h *RecordHandlers) ListFolders(c echo.Context) error {
	folders, err := h.catalogService.Folders(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list folders")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"folders": folders})
}

func (h *RecordHandlers) GetRecord(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "record id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.recordService.GetByID(c.Request().Context(), id)
	if errors.Is(err, services.ErrRecordNotFound) {
		return common.SendNotFoundError(c, "record")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get record")
	}
	return c.JSON(http.StatusOK, record)
}

func (h *RecordHandlers) CreateRecord(c echo.Context) error {
	var record models.Record
	if err := c.Bind(&record); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(record.PartNumber, "part_number"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(record.Name, "name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.recordService.Create(c.Request().Context(), common.UserEmail(c), &record); err != nil {
		if errors.Is(err, services.ErrEmptyEditor) {
			return common.SendUnauthorizedError(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create record")
	}
	return c.JSON(http.StatusCreated, record)
}

func (h *RecordHandlers) UpdateRecord(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "record id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var record models.Record
	if err := c.Bind(&record); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	record.ID = id

	if err := h.recordService.Update(c.Request().Context(), common.UserEmail(c), &record); err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			return common.SendNotFoundError(c, "record")
		case errors.Is(err, services.ErrEmptyEditor):
			return common.SendUnauthorizedError(c)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update record")
		}
	}
	return c.JSON(http.StatusOK, record)
}

func (h *RecordHandlers) DeleteRecord(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "record id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.recordService.Delete(c.Request().Context(), common.UserEmail(c), id); err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			return common.SendNotFoundError(c, "record")
		case errors.Is(err, services.ErrEmptyEditor):
			return common.SendUnauthorizedError(c)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete record")
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadPhoto attaches one uploaded image to the record.
func (h *RecordHandlers) UploadPhoto(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "record id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image file")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image file")
	}

	record, err := h.recordService.AddPhoto(c.Request().Context(), common.UserEmail(c), id, file.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			return common.SendNotFoundError(c, "record")
		case errors.Is(err, services.ErrEmptyEditor):
			return common.SendUnauthorizedError(c)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload photo")
		}
	}
	return c.JSON(http.StatusOK, record)
}

// RemovePhotoRequest names the photo URL to detach from the record.
type RemovePhotoRequest struct {
	URL string `json:"url"`
}

// RemovePhoto detaches the URL from the record and removes the stored object.
func (h *RecordHandlers) RemovePhoto(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "record id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req RemovePhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.URL, "url"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.recordService.RemovePhoto(c.Request().Context(), common.UserEmail(c), id, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			return common.SendNotFoundError(c, "record")
		case errors.Is(err, services.ErrEmptyEditor):
			return common.SendUnauthorizedError(c)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove photo")
		}
	}
	return c.JSON(http.StatusOK, record)
}

// ResolveRequest carries a part number and a partial attribute selection.
type ResolveRequest struct {
	PartNumber string                    `json:"part_number"`
	Selection  models.AttributeSelection `json:"selection"`
}

// ResolveVariant narrows the catalog to the variant the selection targets
// and reports the option sets still open.
func (h *RecordHandlers) ResolveVariant(c echo.Context) error {
	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	resolution, err := h.catalogService.Resolve(c.Request().Context(), req.PartNumber, req.Selection)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve variant")
	}
	return c.JSON(http.StatusOK, resolution)
}
