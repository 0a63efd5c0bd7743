package repositories

import (
	"context"
	"time"

	"stockroom/internal/models"

	"github.com/google/uuid"
)

type AuditLogRepository interface {
	Append(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, limit int) ([]*models.AuditLog, error)
}

type auditLogRepo struct {
	db Database
}

func NewAuditLogRepo(db Database) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Append(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	query := `
		INSERT INTO audit_logs (id, timestamp, user_email, action, subject, details)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.Timestamp,
		entry.User,
		entry.Action,
		entry.Subject,
		entry.Details,
	)
	return err
}

// List returns the newest entries first. The limit is capped so a single page
// never pulls the whole history.
func (r *auditLogRepo) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 || limit > models.MaxAuditLogPage {
		limit = models.MaxAuditLogPage
	}
	query := `
		SELECT id, timestamp, user_email, action, subject, details
		FROM audit_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.User, &entry.Action, &entry.Subject, &entry.Details); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
