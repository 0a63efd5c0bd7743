package handlers

import (
	"context"
	"errors"
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandlers handles stock movement HTTP requests
type TransactionHandlers struct {
	transactionService services.TransactionService
}

func NewTransactionHandlers(transactionService services.TransactionService) *TransactionHandlers {
	return &TransactionHandlers{transactionService: transactionService}
}

func (h *TransactionHandlers) Inbound(c echo.Context) error {
	return h.apply(c, h.transactionService.Inbound)
}

func (h *TransactionHandlers) Outbound(c echo.Context) error {
	return h.apply(c, h.transactionService.Outbound)
}

func (h *TransactionHandlers) apply(c echo.Context, op func(context.Context, string, services.StockMovement) (*services.TransactionResult, error)) error {
	var movement services.StockMovement
	if err := c.Bind(&movement); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidatePositiveInteger(movement.Quantity, "quantity", 1_000_000_000); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := op(c.Request().Context(), common.UserEmail(c), movement)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyEditor):
			return common.SendUnauthorizedError(c)
		case errors.Is(err, services.ErrUnknownPartNumber):
			return common.SendNotFoundError(c, "part number")
		case errors.Is(err, services.ErrUnresolvedVariant):
			return common.SendConflictError(c, err.Error())
		case errors.Is(err, services.ErrInsufficientStock):
			return common.SendConflictError(c, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to apply stock movement")
		}
	}
	return c.JSON(http.StatusOK, result)
}
