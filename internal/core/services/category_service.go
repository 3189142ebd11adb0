package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/validation"
	"github.com/google/uuid"
)

// DefaultCategories is the built-in category set offered to new installations.
var DefaultCategories = []dto.CreateCategoryRequest{
	{Name: "Entertainment", Description: "Streaming services, games, and media"},
	{Name: "Work", Description: "Professional tools and software"},
	{Name: "Utilities", Description: "Internet, phone, and essential services"},
	{Name: "Health & Fitness", Description: "Gym memberships and health apps"},
	{Name: "Education", Description: "Courses, books, and learning platforms"},
	{Name: "Finance", Description: "Banking, investment, and financial services"},
	{Name: "Shopping", Description: "E-commerce and retail subscriptions"},
	{Name: "Cloud Storage", Description: "File storage and backup services"},
}

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	validator    *validation.Validator
	now          func() time.Time
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		validator:    validation.New(nil),
		now:          time.Now,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	cat, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	// Return empty slice if no categories found, not nil
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if err := s.validator.CreateCategory(req); err != nil {
		return nil, err
	}
	now := s.now()
	cat := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.categoryRepo.SaveCategory(ctx, cat); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save category", slog.String("name", cat.Name))
		}
		return nil, fmt.Errorf("failed to create category %q: %w", cat.Name, err)
	}
	s.LogInfo(ctx, "Category created", slog.String("category_id", cat.CategoryID))
	return &cat, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	if err := s.validator.UpdateCategory(req); err != nil {
		return nil, err
	}
	cat, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		cat.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		cat.Description = strings.TrimSpace(*req.Description)
	}
	cat.UpdatedAt = s.now()

	if err := s.categoryRepo.UpdateCategory(ctx, *cat); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return cat, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return err
	}
	removed, err := s.categoryRepo.DeleteCategory(ctx, categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !removed {
		return fmt.Errorf("category %s still present after delete", categoryID)
	}
	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}

func (s *categoryService) SeedDefaultCategories(ctx context.Context) ([]domain.Category, error) {
	created := make([]domain.Category, 0, len(DefaultCategories))
	for _, req := range DefaultCategories {
		cat, err := s.CreateCategory(ctx, req)
		if err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				s.LogWarn(ctx, nil, "Default category already exists", slog.String("name", req.Name))
				continue
			}
			return created, err
		}
		created = append(created, *cat)
	}
	return created, nil
}
