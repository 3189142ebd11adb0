package repositories

import (
	"context"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories ordered by name.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category. A duplicate name yields apperrors.ErrDuplicate.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory overwrites name and description.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory detaches subscriptions from the category and removes it.
	DeleteCategory(ctx context.Context, categoryID string) (bool, error)
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

// CategoryRepositoryWithTx extends CategoryRepositoryFacade with transaction capabilities
type CategoryRepositoryWithTx interface {
	CategoryRepositoryFacade
	TransactionManager
}
