package handlers

import (
	"errors"
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles per-folder category list HTTP requests
type CategoryHandlers struct {
	categoryService services.CategoryService
}

func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	folder := c.Param("folder")
	if folder == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Folder is required")
	}

	categories, err := h.categoryService.List(c.Request().Context(), folder)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list categories")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"folder":     folder,
		"categories": categories,
	})
}

// CategoryRequest names one category in a folder's list.
type CategoryRequest struct {
	Name string `json:"name"`
}

func (h *CategoryHandlers) AddCategory(c echo.Context) error {
	folder := c.Param("folder")
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	categories, err := h.categoryService.Add(c.Request().Context(), common.UserEmail(c), folder, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmptyEditor) {
			return common.SendUnauthorizedError(c)
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"folder":     folder,
		"categories": categories,
	})
}

func (h *CategoryHandlers) RemoveCategory(c echo.Context) error {
	folder := c.Param("folder")
	name := c.Param("name")

	categories, err := h.categoryService.Remove(c.Request().Context(), common.UserEmail(c), folder, name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyEditor):
			return common.SendUnauthorizedError(c)
		case errors.Is(err, services.ErrDefaultCategory):
			return common.SendConflictError(c, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove category")
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"folder":     folder,
		"categories": categories,
	})
}
