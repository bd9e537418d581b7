package postgres

import (
	"context"
	"fmt"

	"cur8tr/business/social"
	"cur8tr/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	DB *gorm.DB
}

var _ social.LikeRepository = (*LikeRepository)(nil)

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{
		DB: db,
	}
}

// Create is a no-op when the user already likes the recommendation.
func (r *LikeRepository) Create(ctx context.Context, like *domain.Like) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}

	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, userID, recommendationID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND recommendation_id = ?", userID, recommendationID).
		Delete(&domain.Like{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	return nil
}

func (r *LikeRepository) FindByUser(ctx context.Context, userID string) ([]domain.Like, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var likes []domain.Like
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	return likes, nil
}

// CountByRecommendations returns like counts for ids that have at least one like.
func (r *LikeRepository) CountByRecommendations(ctx context.Context, ids []string) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		RecommendationID string `gorm:"column:recommendation_id"`
		Count            int64  `gorm:"column:count"`
	}
	err := r.DB.WithContext(ctx).Model(&domain.Like{}).
		Select("recommendation_id, COUNT(*) AS count").
		Where("recommendation_id IN ?", ids).
		Group("recommendation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	for _, row := range rows {
		counts[row.RecommendationID] = row.Count
	}

	return counts, nil
}
