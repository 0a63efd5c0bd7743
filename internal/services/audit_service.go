package services

import (
	"context"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

type AuditService interface {
	List(ctx context.Context, limit int) ([]*models.AuditLog, error)
}

type auditService struct {
	auditRepo repositories.AuditLogRepository
}

func NewAuditService(auditRepo repositories.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	return s.auditRepo.List(ctx, limit)
}
