package social

import (
	"context"
	"fmt"

	"cur8tr/domain"
	"cur8tr/pkg/logger"
)

// FollowRepository contract interface
type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
}

// LikeRepository contract interface
type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, userID, recommendationID string) error
	FindByUser(ctx context.Context, userID string) ([]domain.Like, error)
	CountByRecommendations(ctx context.Context, ids []string) (map[string]int64, error)
}

// UserFinder contract interface
type UserFinder interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// RecommendationFinder contract interface
type RecommendationFinder interface {
	FindByID(ctx context.Context, id string) (domain.Recommendation, error)
}

type socialService struct {
	followRepo FollowRepository
	likeRepo   LikeRepository
	users      UserFinder
	recs       RecommendationFinder
}

func NewSocialService(followRepo FollowRepository, likeRepo LikeRepository, users UserFinder, recs RecommendationFinder) *socialService {
	return &socialService{
		followRepo: followRepo,
		likeRepo:   likeRepo,
		users:      users,
		recs:       recs,
	}
}

// Follow is idempotent. Following yourself is rejected.
func (s *socialService) Follow(ctx context.Context, followerID, followingID string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when following user")
		return fmt.Errorf("context error: %w", err)
	}

	if followerID == followingID {
		logger.Warn("Self follow rejected", "user_id", followerID)
		return fmt.Errorf("cannot follow yourself: %w", domain.ErrInvalidArgument)
	}

	if _, err := s.users.FindByID(ctx, followingID); err != nil {
		logger.Error("Failed to find user to follow", err)
		return err
	}

	if err := s.followRepo.Create(ctx, &domain.Follow{FollowerID: followerID, FollowingID: followingID}); err != nil {
		logger.Error("Failed to follow user", err)
		return fmt.Errorf("failed to follow user: %w", err)
	}

	logger.Info("user followed successfully", "follower_id", followerID, "following_id", followingID)

	return nil
}

func (s *socialService) Unfollow(ctx context.Context, followerID, followingID string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when unfollowing user")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.followRepo.Delete(ctx, followerID, followingID); err != nil {
		logger.Error("Failed to unfollow user", err)
		return fmt.Errorf("failed to unfollow user: %w", err)
	}

	return nil
}

func (s *socialService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when checking follow")
		return false, fmt.Errorf("context error: %w", err)
	}

	ok, err := s.followRepo.Exists(ctx, followerID, followingID)
	if err != nil {
		logger.Error("Failed to check follow", err)
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return ok, nil
}

// Like is idempotent. Recommendations the user cannot see report not found.
func (s *socialService) Like(ctx context.Context, userID, recommendationID string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when liking recommendation")
		return fmt.Errorf("context error: %w", err)
	}

	rec, err := s.recs.FindByID(ctx, recommendationID)
	if err != nil {
		logger.Error("Failed to find recommendation to like", err)
		return err
	}
	if !rec.VisibleTo(userID) {
		return fmt.Errorf("recommendation %s: %w", recommendationID, domain.ErrNotFound)
	}

	if err := s.likeRepo.Create(ctx, &domain.Like{UserID: userID, RecommendationID: recommendationID}); err != nil {
		logger.Error("Failed to like recommendation", err)
		return fmt.Errorf("failed to like recommendation: %w", err)
	}

	return nil
}

func (s *socialService) Unlike(ctx context.Context, userID, recommendationID string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when unliking recommendation")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.likeRepo.Delete(ctx, userID, recommendationID); err != nil {
		logger.Error("Failed to unlike recommendation", err)
		return fmt.Errorf("failed to unlike recommendation: %w", err)
	}

	return nil
}

// UserLikes lists the likes userID has given. Anonymous callers get an empty
// list.
func (s *socialService) UserLikes(ctx context.Context, userID string) ([]domain.Like, error) {
	if userID == "" {
		return []domain.Like{}, nil
	}

	likes, err := s.likeRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list user likes", err)
		return nil, fmt.Errorf("failed to list likes: %w: %w", domain.ErrRepositoryUnavailable, err)
	}
	if likes == nil {
		likes = []domain.Like{}
	}

	return likes, nil
}

// LikeCounts returns a count for every id in ids, zero when unliked.
func (s *socialService) LikeCounts(ctx context.Context, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	stored, err := s.likeRepo.CountByRecommendations(ctx, ids)
	if err != nil {
		logger.Error("Failed to count likes", err)
		return nil, fmt.Errorf("failed to count likes: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	for _, id := range ids {
		counts[id] = stored[id]
	}

	return counts, nil
}

// Decorate attaches like counts to recs.
func (s *socialService) Decorate(ctx context.Context, recs []domain.Recommendation) ([]domain.RecommendationWithLikes, error) {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}

	counts, err := s.LikeCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	return domain.WithLikeCounts(recs, counts), nil
}
