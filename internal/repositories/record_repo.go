package repositories

import (
	"context"
	"fmt"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repositories use. Tests satisfy
// it with a pgxmock pool.
type Database interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type RecordRepository interface {
	Create(ctx context.Context, record *models.Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Record, error)
	Update(ctx context.Context, record *models.Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Record, error)
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int, lastUpdated, lastEditor string) (int, error)
	SetPhotos(ctx context.Context, id uuid.UUID, photos []string, lastUpdated, lastEditor string) error
	ApplyBatch(ctx context.Context, batch models.BatchWrite) error
}

const recordColumns = `id, part_number, name, size, category, material, spec, color, remarks, quantity, safety_stock, photos, last_updated, last_editor`

type recordRepo struct {
	db Database
}

func NewRecordRepo(db Database) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Create(ctx context.Context, record *models.Record) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	query := `
		INSERT INTO records (id, part_number, name, size, category, material, spec, color, remarks, quantity, safety_stock, photos, last_updated, last_editor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.PartNumber,
		record.Name,
		record.Size,
		record.Category,
		record.Material,
		record.Spec,
		record.Color,
		record.Remarks,
		record.Quantity,
		record.SafetyStock,
		record.PhotoList(),
		record.LastUpdated,
		record.LastEditor,
	)
	return err
}

func (r *recordRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE id = $1`
	record, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *recordRepo) Update(ctx context.Context, record *models.Record) error {
	query := `
		UPDATE records
		SET part_number = $2, name = $3, size = $4, category = $5, material = $6, spec = $7, color = $8, remarks = $9, quantity = $10, safety_stock = $11, photos = $12, last_updated = $13, last_editor = $14
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.PartNumber,
		record.Name,
		record.Size,
		record.Category,
		record.Material,
		record.Spec,
		record.Color,
		record.Remarks,
		record.Quantity,
		record.SafetyStock,
		record.PhotoList(),
		record.LastUpdated,
		record.LastEditor,
	)
	return err
}

func (r *recordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM records WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// List returns the full catalog snapshot. Ordering is applied in memory by
// the callers, not here, because the display order depends on parsed sizes.
func (r *recordRepo) List(ctx context.Context) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// AdjustQuantity applies a signed stock movement as a single guarded
// statement, so concurrent movements against the same record serialize on the
// row instead of clobbering each other. A movement that would drive the
// quantity negative matches no row and surfaces as pgx.ErrNoRows; the caller
// maps that to an insufficient-stock error. Returns the quantity after the
// movement.
func (r *recordRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int, lastUpdated, lastEditor string) (int, error) {
	query := `
		UPDATE records
		SET quantity = quantity + $2, last_updated = $3, last_editor = $4
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING quantity
	`
	var quantity int
	if err := r.db.QueryRow(ctx, query, id, delta, lastUpdated, lastEditor).Scan(&quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}

func (r *recordRepo) SetPhotos(ctx context.Context, id uuid.UUID, photos []string, lastUpdated, lastEditor string) error {
	query := `
		UPDATE records
		SET photos = $2, last_updated = $3, last_editor = $4
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, photos, lastUpdated, lastEditor)
	return err
}

// ApplyBatch commits a planned set of inserts, updates and deletes in one
// transaction. Either every write in the batch lands or none does.
func (r *recordRepo) ApplyBatch(ctx context.Context, batch models.BatchWrite) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO records (id, part_number, name, size, category, material, spec, color, remarks, quantity, safety_stock, photos, last_updated, last_editor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	for _, record := range batch.Inserts {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		if _, err := tx.Exec(ctx, insertQuery,
			record.ID, record.PartNumber, record.Name, record.Size, record.Category,
			record.Material, record.Spec, record.Color, record.Remarks,
			record.Quantity, record.SafetyStock, record.PhotoList(),
			record.LastUpdated, record.LastEditor,
		); err != nil {
			return fmt.Errorf("batch insert %s: %w", record.PartNumber, err)
		}
	}

	updateQuery := `
		UPDATE records
		SET part_number = $2, name = $3, size = $4, category = $5, material = $6, spec = $7, color = $8, remarks = $9, quantity = $10, safety_stock = $11, photos = $12, last_updated = $13, last_editor = $14
		WHERE id = $1
	`
	for _, record := range batch.Updates {
		if _, err := tx.Exec(ctx, updateQuery,
			record.ID, record.PartNumber, record.Name, record.Size, record.Category,
			record.Material, record.Spec, record.Color, record.Remarks,
			record.Quantity, record.SafetyStock, record.PhotoList(),
			record.LastUpdated, record.LastEditor,
		); err != nil {
			return fmt.Errorf("batch update %s: %w", record.ID, err)
		}
	}

	if len(batch.DeleteIDs) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM records WHERE id = ANY($1)`, batch.DeleteIDs); err != nil {
			return fmt.Errorf("batch delete: %w", err)
		}
	}

	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	record := &models.Record{}
	err := row.Scan(
		&record.ID,
		&record.PartNumber,
		&record.Name,
		&record.Size,
		&record.Category,
		&record.Material,
		&record.Spec,
		&record.Color,
		&record.Remarks,
		&record.Quantity,
		&record.SafetyStock,
		&record.Photos,
		&record.LastUpdated,
		&record.LastEditor,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}
