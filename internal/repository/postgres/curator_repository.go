package postgres

import (
	"context"
	"fmt"

	"cur8tr/business/curator"
	"cur8tr/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CuratorRepository struct {
	DB *gorm.DB
}

var _ curator.CuratorRepository = (*CuratorRepository)(nil)

func NewCuratorRepository(db *gorm.DB) *CuratorRepository {
	return &CuratorRepository{
		DB: db,
	}
}

func (r *CuratorRepository) FindRecent(ctx context.Context, limit int) ([]domain.CuratorRec, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// private picks are dropped before LIMIT so a full page comes back
	var picks []domain.CuratorRec
	err := r.DB.WithContext(ctx).
		Joins("JOIN recommendations ON recommendations.id = curator_recs.recommendation_id").
		Where("recommendations.is_private = ?", false).
		Preload("Recommendation").
		Preload("Recommendation.Tags").
		Order("curator_recs.created_at DESC").
		Limit(limit).
		Find(&picks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find curator picks: %w", err)
	}

	return picks, nil
}

func (r *CuratorRepository) RecommendationIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []string
	if err := r.DB.WithContext(ctx).Model(&domain.CuratorRec{}).Pluck("recommendation_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list curator picks: %w", err)
	}

	return ids, nil
}

// Create is a no-op when the recommendation is already picked.
func (r *CuratorRepository) Create(ctx context.Context, pick *domain.CuratorRec) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Omit("Recommendation").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(pick).Error
	if err != nil {
		return fmt.Errorf("failed to create curator pick: %w", err)
	}

	return nil
}

func (r *CuratorRepository) DeleteByRecommendation(ctx context.Context, recommendationID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("recommendation_id = ?", recommendationID).Delete(&domain.CuratorRec{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete curator pick: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete curator pick: %w", domain.ErrNotFound)
	}

	return nil
}
