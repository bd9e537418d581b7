package postgres

import (
	"context"
	"fmt"

	"cur8tr/business/comment"
	"cur8tr/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

var _ comment.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{
		DB: db,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit("User").Create(c).Error; err != nil {
		return translate(err, "create comment")
	}

	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Comment{}, fmt.Errorf("context error: %w", err)
	}

	var c domain.Comment
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return domain.Comment{}, translate(err, "find comment")
	}

	return c, nil
}

// FindByRecommendation returns every comment on recommendationID, newest
// first, with its author loaded.
func (r *CommentRepository) FindByRecommendation(ctx context.Context, recommendationID string) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var comments []domain.Comment
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("recommendation_id = ?", recommendationID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	return comments, nil
}
