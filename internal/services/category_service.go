package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"stockroom/internal/caching"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// CategoryService manages the per-folder category lists. The built-in
// categories are always present and can never be renamed or removed.
type CategoryService interface {
	List(ctx context.Context, folder string) ([]string, error)
	Add(ctx context.Context, editor, folder, name string) ([]string, error)
	Remove(ctx context.Context, editor, folder, name string) ([]string, error)
}

type categoryService struct {
	categorySetRepo repositories.CategorySetRepository
	auditRepo       repositories.AuditLogRepository
	cacheService    caching.CacheService
}

func NewCategoryService(categorySetRepo repositories.CategorySetRepository, auditRepo repositories.AuditLogRepository, cacheService caching.CacheService) CategoryService {
	return &categoryService{
		categorySetRepo: categorySetRepo,
		auditRepo:       auditRepo,
		cacheService:    cacheService,
	}
}

func (s *categoryService) List(ctx context.Context, folder string) ([]string, error) {
	if cached, err := s.cacheService.GetCategorySet(ctx, folder); err != nil {
		log.Printf("WARN: category set cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	categories, err := s.categorySetRepo.Get(ctx, folder)
	if err != nil {
		return nil, err
	}
	if cacheErr := s.cacheService.SetCategorySet(ctx, folder, categories, catalogCacheTTL); cacheErr != nil {
		log.Printf("WARN: category set cache write failed: %v", cacheErr)
	}
	return categories, nil
}

func (s *categoryService) Add(ctx context.Context, editor, folder, name string) ([]string, error) {
	if strings.TrimSpace(editor) == "" {
		return nil, ErrEmptyEditor
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	existing, err := s.categorySetRepo.Get(ctx, folder)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if c == name {
			return existing, nil
		}
	}

	merged := models.MergeCategories(existing, name)
	if err := s.store(ctx, folder, merged); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, editor, models.ActionUpdate, fmt.Sprintf("分類 %s/%s", folder, name), "新增分類")
	return merged, nil
}

func (s *categoryService) Remove(ctx context.Context, editor, folder, name string) ([]string, error) {
	if strings.TrimSpace(editor) == "" {
		return nil, ErrEmptyEditor
	}
	if models.IsDefaultCategory(name) {
		return nil, ErrDefaultCategory
	}

	existing, err := s.categorySetRepo.Get(ctx, folder)
	if err != nil {
		return nil, err
	}
	var remaining []string
	for _, c := range existing {
		if c != name {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == len(existing) {
		return existing, nil
	}

	if err := s.store(ctx, folder, remaining); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, editor, models.ActionUpdate, fmt.Sprintf("分類 %s/%s", folder, name), "刪除分類")
	return remaining, nil
}

func (s *categoryService) store(ctx context.Context, folder string, categories []string) error {
	if err := s.categorySetRepo.Upsert(ctx, folder, categories); err != nil {
		return err
	}
	if cacheErr := s.cacheService.DeleteCategorySet(ctx, folder); cacheErr != nil {
		log.Printf("WARN: category set cache invalidation failed: %v", cacheErr)
	}
	return nil
}

func (s *categoryService) appendAudit(ctx context.Context, editor, action, subject, details string) {
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
