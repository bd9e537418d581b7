package postgres

import (
	"context"
	"fmt"

	"cur8tr/business/feed"
	"cur8tr/business/social"
	"cur8tr/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	DB *gorm.DB
}

var (
	_ feed.FollowRepository   = (*FollowRepository)(nil)
	_ social.FollowRepository = (*FollowRepository)(nil)
)

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{
		DB: db,
	}
}

// Create is a no-op when the edge already exists.
func (r *FollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error; err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.Follow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return count > 0, nil
}

func (r *FollowRepository) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []string
	err := r.DB.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followed users: %w", err)
	}

	return ids, nil
}
