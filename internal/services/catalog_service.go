package services

import (
	"context"
	"io"
	"log"
	"time"

	"stockroom/internal/caching"
	"stockroom/internal/catalog"
	"stockroom/internal/csvio"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogQuery selects one view of the catalog. Search and folder are
// mutually exclusive; a non-empty search term wins. An empty or unsortable
// sort column falls back to the default display order.
type CatalogQuery struct {
	Folder     string
	Search     string
	SortColumn string
	Descending bool
}

// CatalogService is the read side: snapshot, derived folders, filtered and
// sorted views, variant resolution, and CSV export. All views are computed
// from the full snapshot, which is cached as one value.
type CatalogService interface {
	Snapshot(ctx context.Context) ([]*models.Record, error)
	Folders(ctx context.Context) ([]catalog.FolderCount, error)
	View(ctx context.Context, query CatalogQuery) ([]*models.Record, error)
	Resolve(ctx context.Context, partNumber string, sel models.AttributeSelection) (catalog.Resolution, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	Invalidate(ctx context.Context)
}

type catalogService struct {
	recordRepo   repositories.RecordRepository
	cacheService caching.CacheService
}

func NewCatalogService(recordRepo repositories.RecordRepository, cacheService caching.CacheService) CatalogService {
	return &catalogService{
		recordRepo:   recordRepo,
		cacheService: cacheService,
	}
}

// Snapshot returns the full catalog, served from cache when warm. Cache
// failures degrade to a database read, never to a request failure.
func (s *catalogService) Snapshot(ctx context.Context) ([]*models.Record, error) {
	if cached, err := s.cacheService.GetCatalog(ctx); err != nil {
		log.Printf("WARN: catalog cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	records, err := s.recordRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if cacheErr := s.cacheService.SetCatalog(ctx, records, catalogCacheTTL); cacheErr != nil {
		log.Printf("WARN: catalog cache write failed: %v", cacheErr)
	}
	return records, nil
}

func (s *catalogService) Folders(ctx context.Context) ([]catalog.FolderCount, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Folders(records), nil
}

func (s *catalogService) View(ctx context.Context, query CatalogQuery) ([]*models.Record, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if query.Search != "" {
		records = catalog.FilterBySearch(records, query.Search)
	} else if query.Folder != "" {
		records = catalog.FilterByFolder(records, query.Folder)
	}

	// Sort a copy. The snapshot slice may be shared with the cache.
	view := make([]*models.Record, len(records))
	copy(view, records)
	catalog.SortRecords(view, query.SortColumn, query.Descending)
	return view, nil
}

func (s *catalogService) Resolve(ctx context.Context, partNumber string, sel models.AttributeSelection) (catalog.Resolution, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return catalog.Resolution{}, err
	}
	return catalog.Resolve(records, partNumber, sel), nil
}

// ExportCSV writes the whole catalog in default display order.
func (s *catalogService) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	sorted := make([]*models.Record, len(records))
	copy(sorted, records)
	catalog.SortDefault(sorted)
	return csvio.WriteCatalog(w, sorted)
}

func (s *catalogService) Invalidate(ctx context.Context) {
	if err := s.cacheService.InvalidateCatalog(ctx); err != nil {
		log.Printf("WARN: catalog cache invalidation failed: %v", err)
	}
}
