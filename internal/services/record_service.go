package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stockroom/internal/caching"
	"stockroom/internal/catalog"
	"stockroom/internal/common"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// RecordService owns single-record mutations. Every write stamps the editor
// and timestamp, appends an audit entry, widens the folder's category set
// when the record introduces a new category, and invalidates the cached
// catalog snapshot.
type RecordService interface {
	Create(ctx context.Context, editor string, record *models.Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Record, error)
	Update(ctx context.Context, editor string, record *models.Record) error
	Delete(ctx context.Context, editor string, id uuid.UUID) error
	AddPhoto(ctx context.Context, editor string, id uuid.UUID, filename string, data []byte) (*models.Record, error)
	RemovePhoto(ctx context.Context, editor string, id uuid.UUID, url string) (*models.Record, error)
}

type recordService struct {
	recordRepo      repositories.RecordRepository
	categorySetRepo repositories.CategorySetRepository
	auditRepo       repositories.AuditLogRepository
	photoService    PhotoService
	cacheService    caching.CacheService
}

func NewRecordService(recordRepo repositories.RecordRepository, categorySetRepo repositories.CategorySetRepository, auditRepo repositories.AuditLogRepository, photoService PhotoService, cacheService caching.CacheService) RecordService {
	return &recordService{
		recordRepo:      recordRepo,
		categorySetRepo: categorySetRepo,
		auditRepo:       auditRepo,
		photoService:    photoService,
		cacheService:    cacheService,
	}
}

func (s *recordService) Create(ctx context.Context, editor string, record *models.Record) error {
	if strings.TrimSpace(editor) == "" {
		return ErrEmptyEditor
	}
	record.LastUpdated = common.FormatTimestamp(time.Now())
	record.LastEditor = editor

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return err
	}

	s.widenCategorySet(ctx, record)
	s.appendAudit(ctx, editor, models.ActionCreate, catalog.Identity(record), "")
	s.invalidate(ctx, record.ID)
	return nil
}

func (s *recordService) GetByID(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	if cached, err := s.cacheService.GetRecord(ctx, id); err != nil {
		log.Printf("WARN: record cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	record, err := s.recordRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	if cacheErr := s.cacheService.SetRecord(ctx, record, catalogCacheTTL); cacheErr != nil {
		log.Printf("WARN: record cache write failed: %v", cacheErr)
	}
	return record, nil
}

// Update diffs the submitted record against the stored one. A no-op edit
// writes nothing and leaves no audit entry.
func (s *recordService) Update(ctx context.Context, editor string, record *models.Record) error {
	if strings.TrimSpace(editor) == "" {
		return ErrEmptyEditor
	}

	before, err := s.recordRepo.GetByID(ctx, record.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRecordNotFound
	}
	if err != nil {
		return err
	}

	diff := catalog.Diff(before, record)
	if diff == "" {
		return nil
	}

	record.LastUpdated = common.FormatTimestamp(time.Now())
	record.LastEditor = editor
	if err := s.recordRepo.Update(ctx, record); err != nil {
		return err
	}

	s.widenCategorySet(ctx, record)
	s.appendAudit(ctx, editor, models.ActionUpdate, catalog.Identity(record), diff)
	s.invalidate(ctx, record.ID)
	return nil
}

func (s *recordService) Delete(ctx context.Context, editor string, id uuid.UUID) error {
	if strings.TrimSpace(editor) == "" {
		return ErrEmptyEditor
	}

	record, err := s.recordRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRecordNotFound
	}
	if err != nil {
		return err
	}

	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.appendAudit(ctx, editor, models.ActionDelete, catalog.Identity(record), "")
	s.invalidate(ctx, id)
	return nil
}

// AddPhoto stores the uploaded image and appends its URL to the record's
// photo list. The first photo stays the cover.
func (s *recordService) AddPhoto(ctx context.Context, editor string, id uuid.UUID, filename string, data []byte) (*models.Record, error) {
	if strings.TrimSpace(editor) == "" {
		return nil, ErrEmptyEditor
	}

	record, err := s.recordRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	url, err := s.photoService.Upload(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	before := record.PhotoList()
	photos := append(append([]string(nil), before...), url)
	now := common.FormatTimestamp(time.Now())
	if err := s.recordRepo.SetPhotos(ctx, id, photos, now, editor); err != nil {
		return nil, err
	}

	record.Photo = photos[0]
	record.Photos = photos
	record.LastUpdated = now
	record.LastEditor = editor

	s.appendAudit(ctx, editor, models.ActionUpdate, catalog.Identity(record), fmt.Sprintf("照片: %d張 -> %d張", len(before), len(photos)))
	s.invalidate(ctx, id)
	return record, nil
}

// RemovePhoto drops the URL from the record's photo list and removes the
// stored object. A URL the record does not carry is a no-op.
func (s *recordService) RemovePhoto(ctx context.Context, editor string, id uuid.UUID, url string) (*models.Record, error) {
	if strings.TrimSpace(editor) == "" {
		return nil, ErrEmptyEditor
	}

	record, err := s.recordRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	before := record.PhotoList()
	var photos []string
	for _, p := range before {
		if p != url {
			photos = append(photos, p)
		}
	}
	if len(photos) == len(before) {
		return record, nil
	}

	now := common.FormatTimestamp(time.Now())
	if err := s.recordRepo.SetPhotos(ctx, id, photos, now, editor); err != nil {
		return nil, err
	}

	// Object cleanup is best effort; the record no longer references the URL
	// either way.
	if object := storedObjectName(url); object != "" {
		if err := s.photoService.Delete(ctx, object); err != nil {
			log.Printf("WARN: photo object delete failed for %s: %v", object, err)
		}
	}

	record.Photo = ""
	if len(photos) > 0 {
		record.Photo = photos[0]
	}
	record.Photos = photos
	record.LastUpdated = now
	record.LastEditor = editor

	s.appendAudit(ctx, editor, models.ActionUpdate, catalog.Identity(record), fmt.Sprintf("照片: %d張 -> %d張", len(before), len(photos)))
	s.invalidate(ctx, id)
	return record, nil
}

// storedObjectName extracts the object key from a stored photo URL. Legacy
// data: URLs live inside the record itself and have nothing to delete.
func storedObjectName(url string) string {
	if strings.HasPrefix(url, "data:") {
		return ""
	}
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return ""
}

// widenCategorySet adds the record's category to its folder's list when it is
// not already offered. Category sets only grow through record writes; they
// shrink only through explicit category management.
func (s *recordService) widenCategorySet(ctx context.Context, record *models.Record) {
	if record.Category == "" || models.IsDefaultCategory(record.Category) {
		return
	}
	folder := catalog.FolderOf(record)
	existing, err := s.categorySetRepo.Get(ctx, folder)
	if err != nil {
		log.Printf("WARN: category set read failed for folder %s: %v", folder, err)
		return
	}
	for _, c := range existing {
		if c == record.Category {
			return
		}
	}
	merged := models.MergeCategories(existing, record.Category)
	if err := s.categorySetRepo.Upsert(ctx, folder, merged); err != nil {
		log.Printf("WARN: category set update failed for folder %s: %v", folder, err)
		return
	}
	if cacheErr := s.cacheService.DeleteCategorySet(ctx, folder); cacheErr != nil {
		log.Printf("WARN: category set cache invalidation failed: %v", cacheErr)
	}
}

func (s *recordService) appendAudit(ctx context.Context, editor, action, subject, details string) {
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

func (s *recordService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheService.InvalidateCatalog(ctx); err != nil {
		log.Printf("WARN: catalog cache invalidation failed: %v", err)
	}
	if err := s.cacheService.DeleteRecord(ctx, id); err != nil {
		log.Printf("WARN: record cache invalidation failed: %v", err)
	}
}
