package repositories

import (
	"context"
	"errors"

	"stockroom/internal/models"

	"github.com/jackc/pgx/v5"
)

// CategorySetRepository stores the per-folder category lists. A folder with
// no stored row implicitly holds just the default categories.
type CategorySetRepository interface {
	Get(ctx context.Context, folder string) ([]string, error)
	GetAll(ctx context.Context) (map[string][]string, error)
	Upsert(ctx context.Context, folder string, categories []string) error
}

type categorySetRepo struct {
	db Database
}

func NewCategorySetRepo(db Database) CategorySetRepository {
	return &categorySetRepo{db: db}
}

func (r *categorySetRepo) Get(ctx context.Context, folder string) ([]string, error) {
	query := `SELECT categories FROM category_sets WHERE folder = $1`
	var categories []string
	err := r.db.QueryRow(ctx, query, folder).Scan(&categories)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MergeCategories(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return models.MergeCategories(categories), nil
}

func (r *categorySetRepo) GetAll(ctx context.Context) (map[string][]string, error) {
	query := `SELECT folder, categories FROM category_sets`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := make(map[string][]string)
	for rows.Next() {
		var folder string
		var categories []string
		if err := rows.Scan(&folder, &categories); err != nil {
			return nil, err
		}
		sets[folder] = models.MergeCategories(categories)
	}
	return sets, rows.Err()
}

func (r *categorySetRepo) Upsert(ctx context.Context, folder string, categories []string) error {
	query := `
		INSERT INTO category_sets (folder, categories, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (folder) DO UPDATE SET categories = $2, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, folder, categories)
	return err
}
