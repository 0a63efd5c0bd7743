package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/caching"
	"stockroom/internal/catalog"
	"stockroom/internal/common"
	"stockroom/internal/csvio"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// ImageImportResult summarizes an image import. Matched counts assets, not
// record writes; one asset can update several variants.
type ImageImportResult struct {
	Matched   int      `json:"matched"`
	Unmatched []string `json:"unmatched,omitempty"`
}

// BatchService plans bulk mutations against a catalog snapshot and commits
// each plan as one transaction. Planning never writes; a failed apply leaves
// the catalog untouched.
type BatchService interface {
	BatchDelete(ctx context.Context, editor string, ids []uuid.UUID) (int, error)
	BatchEdit(ctx context.Context, editor string, working []*models.Record) (int, error)
	ImportCSV(ctx context.Context, editor string, r io.Reader) (*ImportResult, error)
	MatchImages(ctx context.Context, editor string, assets []models.ImageAsset) (*ImageImportResult, error)
}

type batchService struct {
	recordRepo      repositories.RecordRepository
	categorySetRepo repositories.CategorySetRepository
	auditRepo       repositories.AuditLogRepository
	catalogService  CatalogService
	photoService    PhotoService
	cacheService    caching.CacheService
}

func NewBatchService(recordRepo repositories.RecordRepository, categorySetRepo repositories.CategorySetRepository, auditRepo repositories.AuditLogRepository, catalogService CatalogService, photoService PhotoService, cacheService caching.CacheService) BatchService {
	return &batchService{
		recordRepo:      recordRepo,
		categorySetRepo: categorySetRepo,
		auditRepo:       auditRepo,
		catalogService:  catalogService,
		photoService:    photoService,
		cacheService:    cacheService,
	}
}

// BatchDelete removes the selected records. Ids that vanished since the
// selection was made are dropped from the plan, not failed. Returns the
// number of records actually deleted.
func (s *batchService) BatchDelete(ctx context.Context, editor string, ids []uuid.UUID) (int, error) {
	if strings.TrimSpace(editor) == "" {
		return 0, ErrEmptyEditor
	}

	snapshot, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	plan := catalog.PlanBatchDelete(snapshot, ids)
	if len(plan.Records) == 0 {
		return 0, nil
	}

	if err := s.recordRepo.ApplyBatch(ctx, models.BatchWrite{DeleteIDs: plan.IDs()}); err != nil {
		return 0, err
	}

	for _, record := range plan.Records {
		s.appendAudit(ctx, editor, models.ActionBatchDelete, catalog.Identity(record), "")
	}
	s.catalogService.Invalidate(ctx)
	return len(plan.Records), nil
}

// BatchEdit applies the working copies whose diff against the stored record
// is non-empty. Returns the number of rows actually changed.
func (s *batchService) BatchEdit(ctx context.Context, editor string, working []*models.Record) (int, error) {
	if strings.TrimSpace(editor) == "" {
		return 0, ErrEmptyEditor
	}

	snapshot, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	plan := catalog.PlanBatchEdit(snapshot, working)
	if len(plan.Updates) == 0 {
		return 0, nil
	}

	now := common.FormatTimestamp(time.Now())
	batch := models.BatchWrite{}
	for _, update := range plan.Updates {
		update.Record.LastUpdated = now
		update.Record.LastEditor = editor
		batch.Updates = append(batch.Updates, update.Record)
	}

	if err := s.recordRepo.ApplyBatch(ctx, batch); err != nil {
		return 0, err
	}

	for _, update := range plan.Updates {
		s.appendAudit(ctx, editor, models.ActionBatchUpdate, catalog.Identity(update.Record), update.Diff)
	}
	s.catalogService.Invalidate(ctx)
	return len(plan.Updates), nil
}

// ImportCSV inserts every well-formed row and widens folder category sets
// for categories the file introduces. The whole import commits or none of it
// does.
func (s *batchService) ImportCSV(ctx context.Context, editor string, r io.Reader) (*ImportResult, error) {
	if strings.TrimSpace(editor) == "" {
		return nil, ErrEmptyEditor
	}

	rows, err := csvio.ParseRows(r)
	if err != nil {
		return nil, err
	}

	categorySets, err := s.categorySetRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	plan := catalog.PlanImport(rows, categorySets)
	now := common.FormatTimestamp(time.Now())
	for _, record := range plan.Inserts {
		record.LastUpdated = now
		record.LastEditor = editor
	}

	if len(plan.Inserts) > 0 {
		if err := s.recordRepo.ApplyBatch(ctx, models.BatchWrite{Inserts: plan.Inserts}); err != nil {
			return nil, err
		}
	}

	for folder, categories := range plan.CategoryUpdates {
		if err := s.categorySetRepo.Upsert(ctx, folder, categories); err != nil {
			log.Printf("WARN: category set update failed for folder %s: %v", folder, err)
			continue
		}
		if cacheErr := s.cacheService.DeleteCategorySet(ctx, folder); cacheErr != nil {
			log.Printf("WARN: category set cache invalidation failed: %v", cacheErr)
		}
	}

	s.appendAudit(ctx, editor, models.ActionImportCSV, "CSV", fmt.Sprintf("新增 %d 筆", len(plan.Inserts)))
	s.catalogService.Invalidate(ctx)
	return &ImportResult{Inserted: len(plan.Inserts), Skipped: plan.SkippedRows}, nil
}

// MatchImages uploads each asset whose filename stem matches a part number
// and sets the stored URL as the photo of every variant sharing that part
// number. The matched image replaces the existing photo list, so it becomes
// the cover photo on every variant.
func (s *batchService) MatchImages(ctx context.Context, editor string, assets []models.ImageAsset) (*ImageImportResult, error) {
	if strings.TrimSpace(editor) == "" {
		return nil, ErrEmptyEditor
	}

	snapshot, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	plan := catalog.PlanImageMatch(assets, snapshot)

	byID := make(map[uuid.UUID]*models.Record, len(snapshot))
	for _, record := range snapshot {
		byID[record.ID] = record
	}

	now := common.FormatTimestamp(time.Now())
	batch := models.BatchWrite{}
	for _, match := range plan.Matches {
		url, err := s.photoService.Upload(ctx, match.Asset.Filename, match.Asset.Data)
		if err != nil {
			return nil, fmt.Errorf("upload image %s: %w", match.Asset.Filename, err)
		}
		for _, id := range match.RecordIDs {
			record, ok := byID[id]
			if !ok {
				continue
			}
			updated := *record
			updated.Photo = url
			updated.Photos = []string{url}
			updated.LastUpdated = now
			updated.LastEditor = editor
			batch.Updates = append(batch.Updates, &updated)
		}
	}

	if len(batch.Updates) > 0 {
		if err := s.recordRepo.ApplyBatch(ctx, batch); err != nil {
			return nil, err
		}
	}

	s.appendAudit(ctx, editor, models.ActionImportImages, "圖片匯入", fmt.Sprintf("配對 %d 張", len(plan.Matches)))
	s.catalogService.Invalidate(ctx)
	return &ImageImportResult{Matched: len(plan.Matches), Unmatched: plan.Unmatched}, nil
}

func (s *batchService) appendAudit(ctx context.Context, editor, action, subject, details string) {
	entry := &models.AuditLog{
		User:    editor,
		Action:  action,
		Subject: subject,
		Details: details,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		log.Printf("WARN: audit append failed for action %s: %v", action, err)
	}
}
