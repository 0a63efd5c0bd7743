package jobs

import (
	"context"
	"log"

	"stockroom/internal/catalog"
	"stockroom/internal/services"
)

// LowStockChecker sweeps the catalog for records at or below their safety
// stock. The safety stock is per record, not a global threshold.
type LowStockChecker struct {
	catalogService services.CatalogService
}

// LowStockAlert reports one record under its safety stock.
type LowStockAlert struct {
	Identity    string
	Quantity    int
	SafetyStock int
}

func NewLowStockChecker(catalogService services.CatalogService) *LowStockChecker {
	return &LowStockChecker{catalogService: catalogService}
}

func (l *LowStockChecker) CheckLowStock(ctx context.Context) ([]LowStockAlert, error) {
	records, err := l.catalogService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var alerts []LowStockAlert
	for _, record := range records {
		if record.LowStock() {
			alerts = append(alerts, LowStockAlert{
				Identity:    catalog.Identity(record),
				Quantity:    record.Quantity,
				SafetyStock: record.SafetyStock,
			})
		}
	}
	return alerts, nil
}

func (l *LowStockChecker) LogLowStockAlerts(alerts []LowStockAlert) {
	if len(alerts) == 0 {
		return
	}
	log.Printf("Low stock: %d records under safety stock", len(alerts))
	for _, alert := range alerts {
		log.Printf("- %s has %d units (safety stock: %d)", alert.Identity, alert.Quantity, alert.SafetyStock)
	}
}
