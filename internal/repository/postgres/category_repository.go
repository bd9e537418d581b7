package postgres

import (
	"context"
	"fmt"

	"cur8tr/business/category"
	"cur8tr/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

var _ category.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return translate(err, "create category")
	}

	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	var c domain.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return domain.Category{}, translate(err, "find category")
	}

	return c, nil
}

// FindVisible returns the pre-built categories followed by viewerID's own.
func (r *CategoryRepository) FindVisible(ctx context.Context, viewerID string) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	tx := r.DB.WithContext(ctx)
	if viewerID == "" {
		tx = tx.Where("user_id IS NULL")
	} else {
		tx = tx.Where("user_id IS NULL OR user_id = ?", viewerID)
	}

	var categories []domain.Category
	if err := tx.Order("user_id IS NOT NULL").Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

// Delete detaches the category from its recommendations, then removes it.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Recommendation{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach category: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&domain.Category{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete category: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete category: %w", domain.ErrNotFound)
		}

		return nil
	})
}
