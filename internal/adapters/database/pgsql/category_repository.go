package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryWithTx {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryWithTx
var _ portsrepo.CategoryRepositoryWithTx = (*PgxCategoryRepository)(nil)

const fullCategorySelectQuery = `
SELECT c.category_id, c.name, c.description, c.created_at, c.updated_at
FROM categories c
`

func scanCategory(row pgx.Row) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.CategoryID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	cat, err := scanCategory(r.Pool.QueryRow(ctx, fullCategorySelectQuery+`WHERE c.category_id = $1;`, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	return &cat, nil
}

// ListCategories retrieves all categories ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, fullCategorySelectQuery+`ORDER BY c.name ASC;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	cats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect category rows: %w", err)
	}
	return cats, nil
}

// SaveCategory inserts a new category. Names are unique.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", category.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

// UpdateCategory overwrites name and description.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `UPDATE categories SET name = $2, description = $3, updated_at = $4 WHERE category_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, category.CategoryID, category.Name, category.Description, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", category.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory clears the category from every subscription and removes it
// in one transaction. It reports whether the category is gone afterwards.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `UPDATE subscriptions SET category_id = NULL WHERE category_id = $1;`, categoryID); err != nil {
		return false, fmt.Errorf("failed to detach subscriptions from category %s: %w", categoryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID); err != nil {
		return false, fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}

	var remaining int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE category_id = $1;`, categoryID).Scan(&remaining); err != nil {
		return false, fmt.Errorf("failed to verify deletion of category %s: %w", categoryID, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return remaining == 0, nil
}
