package category

import (
	"context"
	"fmt"
	"strings"

	"cur8tr/domain"
	"cur8tr/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id string) (domain.Category, error)
	FindVisible(ctx context.Context, viewerID string) ([]domain.Category, error)
	Delete(ctx context.Context, id string) error
}

const maxNameLength = 100

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

// GetCategories returns the pre-built categories plus viewerID's own.
func (s *categoryService) GetCategories(ctx context.Context, viewerID string) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindVisible(ctx, viewerID)
	if err != nil {
		logger.Error("Failed to find categories", err)
		return nil, fmt.Errorf("failed to find categories: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, ownerID, name string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLength {
		logger.Error("Invalid category data: name must be 1-100 characters")
		return nil, fmt.Errorf("category name must be 1-%d characters: %w", maxNameLength, domain.ErrInvalidArgument)
	}

	category := &domain.Category{
		Name:   name,
		UserID: &ownerID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("failed to create new category", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("category created successfully")

	return category, nil
}

// DeleteCategory removes one of ownerID's custom categories. Pre-built
// categories and other users' categories cannot be deleted.
func (s *categoryService) DeleteCategory(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting category")
		return fmt.Errorf("context error: %w", err)
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("category not found", err)
		return err
	}

	if category.IsPrebuilt() || *category.UserID != ownerID {
		logger.Warn("Category deletion by non-owner", "category_id", id, "user_id", ownerID)
		return fmt.Errorf("can only delete your own custom categories: %w", domain.ErrForbidden)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete category", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logger.Info("category deleted successfully")

	return nil
}
