package postgres

import (
	"context"
	"fmt"
	"time"

	"cur8tr/business/adminrecommend"
	"cur8tr/business/section"
	"cur8tr/domain"

	"gorm.io/gorm"
)

type AdminRecommendRepository struct {
	DB *gorm.DB
}

var (
	_ adminrecommend.AdminRecommendRepository = (*AdminRecommendRepository)(nil)
	_ section.CardFinder                      = (*AdminRecommendRepository)(nil)
)

func NewAdminRecommendRepository(db *gorm.DB) *AdminRecommendRepository {
	return &AdminRecommendRepository{
		DB: db,
	}
}

func (r *AdminRecommendRepository) Find(ctx context.Context, visibleOnly bool) ([]domain.AdminRecommend, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx)
	if visibleOnly {
		query = query.Where("is_visible = ?", true)
	}

	var cards []domain.AdminRecommend
	if err := query.Order("created_at DESC").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to find admin recommends: %w", err)
	}

	return cards, nil
}

// FindVisibleBySection lists the visible cards placed in a section, oldest
// first.
func (r *AdminRecommendRepository) FindVisibleBySection(ctx context.Context, sectionID string) ([]domain.AdminRecommend, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var cards []domain.AdminRecommend
	err := r.DB.WithContext(ctx).
		Where("section_id = ? AND is_visible = ?", sectionID, true).
		Order("created_at ASC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find section cards: %w", err)
	}

	return cards, nil
}

func (r *AdminRecommendRepository) FindByID(ctx context.Context, id string) (domain.AdminRecommend, error) {
	if err := ctx.Err(); err != nil {
		return domain.AdminRecommend{}, fmt.Errorf("context error: %w", err)
	}

	var card domain.AdminRecommend
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		return domain.AdminRecommend{}, translate(err, "find admin recommend")
	}

	return card, nil
}

func (r *AdminRecommendRepository) Create(ctx context.Context, card *domain.AdminRecommend) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(card).Error; err != nil {
		return translate(err, "create admin recommend")
	}

	return nil
}

var cardColumns = []string{
	"title", "subtitle", "image_url", "external_url", "price", "is_visible", "section_id", "updated_at",
}

func (r *AdminRecommendRepository) Update(ctx context.Context, card *domain.AdminRecommend) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(card).Select(cardColumns).Updates(card)
	if result.Error != nil {
		return translate(result.Error, "update admin recommend")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update admin recommend: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *AdminRecommendRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.AdminRecommend{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete admin recommend: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete admin recommend: %w", domain.ErrNotFound)
	}

	return nil
}

// ToggleVisibility flips is_visible in place and returns the stored card.
func (r *AdminRecommendRepository) ToggleVisibility(ctx context.Context, id string) (domain.AdminRecommend, error) {
	if err := ctx.Err(); err != nil {
		return domain.AdminRecommend{}, fmt.Errorf("context error: %w", err)
	}

	var card domain.AdminRecommend
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.AdminRecommend{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_visible": gorm.Expr("NOT is_visible"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to toggle admin recommend: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("toggle admin recommend: %w", domain.ErrNotFound)
		}

		return tx.Where("id = ?", id).First(&card).Error
	})
	if err != nil {
		return domain.AdminRecommend{}, err
	}

	return card, nil
}
