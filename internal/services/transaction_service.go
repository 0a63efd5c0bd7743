package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"stockroom/internal/caching"
	"stockroom/internal/catalog"
	"stockroom/internal/common"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// StockMovement is one inbound or outbound transaction request. The part
// number plus the attribute selection must resolve to exactly one variant.
type StockMovement struct {
	PartNumber string                    `json:"part_number"`
	Selection  models.AttributeSelection `json:"selection"`
	Quantity   int                       `json:"quantity"`
}

// TransactionResult reports the applied movement.
type TransactionResult struct {
	Record *models.Record `json:"record"`
	Before int            `json:"before"`
	After  int            `json:"after"`
}

type TransactionService interface {
	Inbound(ctx context.Context, editor string, movement StockMovement) (*TransactionResult, error)
	Outbound(ctx context.Context, editor string, movement StockMovement) (*TransactionResult, error)
}

type transactionService struct {
	recordRepo     repositories.RecordRepository
	auditRepo      repositories.AuditLogRepository
	catalogService CatalogService
	cacheService   caching.CacheService
}

func NewTransactionService(recordRepo repositories.RecordRepository, auditRepo repositories.AuditLogRepository, catalogService CatalogService, cacheService caching.CacheService) TransactionService {
	return &transactionService{
		recordRepo:     recordRepo,
		auditRepo:      auditRepo,
		catalogService: catalogService,
		cacheService:   cacheService,
	}
}

func (s *transactionService) Inbound(ctx context.Context, editor string, movement StockMovement) (*TransactionResult, error) {
	return s.apply(ctx, editor, movement, models.ActionTransactIn)
}

func (s *transactionService) Outbound(ctx context.Context, editor string, movement StockMovement) (*TransactionResult, error) {
	return s.apply(ctx, editor, movement, models.ActionTransactOut)
}

func (s *transactionService) apply(ctx context.Context, editor string, movement StockMovement, action string) (*TransactionResult, error) {
	if strings.TrimSpace(editor) == "" {
		return nil, ErrEmptyEditor
	}
	if movement.Quantity <= 0 {
		return nil, fmt.Errorf("movement quantity must be positive, got %d", movement.Quantity)
	}

	resolution, err := s.catalogService.Resolve(ctx, movement.PartNumber, movement.Selection)
	if err != nil {
		return nil, err
	}
	switch resolution.State {
	case catalog.StateResolved:
	case catalog.StateEmpty, catalog.StateNotFound:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPartNumber, movement.PartNumber)
	default:
		return nil, fmt.Errorf("%w: %q matches %d variants", ErrUnresolvedVariant, movement.PartNumber, len(resolution.Candidates))
	}

	record := resolution.Resolved
	before := record.Quantity
	delta := movement.Quantity
	if action == models.ActionTransactOut {
		delta = -movement.Quantity
		if before < movement.Quantity {
			return nil, fmt.Errorf("%w: on hand %d, requested %d", ErrInsufficientStock, before, movement.Quantity)
		}
	}

	// The guard re-checks the quantity inside the update, so a concurrent
	// outbound cannot drive the stock negative between the read above and
	// the write.
	after, err := s.recordRepo.AdjustQuantity(ctx, record.ID, delta, common.FormatTimestamp(time.Now()), editor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: on hand %d, requested %d", ErrInsufficientStock, before, movement.Quantity)
	}
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("庫存: %d -> %d (變動: %d)", after-delta, after, movement.Quantity)
	entry := &models.AuditLog{
		User:    editor,
		Action:  action,
		Subject: catalog.Identity(record),
		Details: details,
	}
	if auditErr := s.auditRepo.Append(ctx, entry); auditErr != nil {
		log.Printf("WARN: audit append failed for action %s: %v", action, auditErr)
	}

	if cacheErr := s.cacheService.InvalidateCatalog(ctx); cacheErr != nil {
		log.Printf("WARN: catalog cache invalidation failed: %v", cacheErr)
	}
	if cacheErr := s.cacheService.DeleteRecord(ctx, record.ID); cacheErr != nil {
		log.Printf("WARN: record cache invalidation failed: %v", cacheErr)
	}

	return &TransactionResult{Record: record, Before: after - delta, After: after}, nil
}
