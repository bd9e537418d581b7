package comment

import (
	"context"
	"fmt"
	"strings"

	"cur8tr/domain"
	"cur8tr/pkg/logger"
)

// CommentRepository contract interface
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id string) (domain.Comment, error)
	FindByRecommendation(ctx context.Context, recommendationID string) ([]domain.Comment, error)
}

// RecommendationFinder contract interface
type RecommendationFinder interface {
	FindByID(ctx context.Context, id string) (domain.Recommendation, error)
}

const maxContentLength = 2000

type commentService struct {
	commentRepo CommentRepository
	recs        RecommendationFinder
}

func NewCommentService(commentRepo CommentRepository, recs RecommendationFinder) *commentService {
	return &commentService{
		commentRepo: commentRepo,
		recs:        recs,
	}
}

// List returns the top-level comments on recommendationID newest first, each
// carrying its replies oldest first.
func (s *commentService) List(ctx context.Context, recommendationID, viewerID string) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing comments")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.checkVisible(ctx, recommendationID, viewerID); err != nil {
		return nil, err
	}

	all, err := s.commentRepo.FindByRecommendation(ctx, recommendationID)
	if err != nil {
		logger.Error("Failed to find comments", err)
		return nil, fmt.Errorf("failed to find comments: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	return Thread(all), nil
}

func (s *commentService) Create(ctx context.Context, userID, recommendationID string, parentID *string, content string) (domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating comment")
		return domain.Comment{}, fmt.Errorf("context error: %w", err)
	}

	content = strings.TrimSpace(content)
	if content == "" || len([]rune(content)) > maxContentLength {
		return domain.Comment{}, fmt.Errorf("comment must be 1-%d characters: %w", maxContentLength, domain.ErrInvalidArgument)
	}

	if err := s.checkVisible(ctx, recommendationID, userID); err != nil {
		return domain.Comment{}, err
	}

	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	if parentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *parentID)
		if err != nil {
			logger.Error("Parent comment not found", err)
			return domain.Comment{}, err
		}
		if parent.RecommendationID != recommendationID {
			return domain.Comment{}, fmt.Errorf("parent comment belongs to another recommendation: %w", domain.ErrInvalidArgument)
		}
		// replies attach to the top-level comment
		if parent.ParentID != nil {
			parentID = parent.ParentID
		}
	}

	c := domain.Comment{
		UserID:           userID,
		RecommendationID: recommendationID,
		ParentID:         parentID,
		Content:          content,
	}
	if err := s.commentRepo.Create(ctx, &c); err != nil {
		logger.Error("Failed to create comment", err)
		return domain.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	logger.Info("comment created successfully", "comment_id", c.ID)

	return c, nil
}

func (s *commentService) checkVisible(ctx context.Context, recommendationID, viewerID string) error {
	rec, err := s.recs.FindByID(ctx, recommendationID)
	if err != nil {
		logger.Error("Recommendation not found for comments", err)
		return err
	}
	if !rec.VisibleTo(viewerID) {
		return fmt.Errorf("recommendation %s: %w", recommendationID, domain.ErrNotFound)
	}
	return nil
}

// Thread nests replies under their parents. Input is newest first; top-level
// order is kept and replies are reversed into reading order. Orphaned replies
// are dropped.
func Thread(all []domain.Comment) []domain.Comment {
	replies := make(map[string][]domain.Comment)
	for _, c := range all {
		if c.ParentID != nil {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		}
	}

	out := make([]domain.Comment, 0, len(all))
	for _, c := range all {
		if c.ParentID != nil {
			continue
		}
		rs := replies[c.ID]
		c.Replies = make([]domain.Comment, 0, len(rs))
		for i := len(rs) - 1; i >= 0; i-- {
			r := rs[i]
			r.Replies = []domain.Comment{}
			c.Replies = append(c.Replies, r)
		}
		out = append(out, c)
	}
	return out
}
