package feed

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"
	"cur8tr/pkg/metrics"
)

// RecommendationRepository contract interface
type RecommendationRepository interface {
	Find(ctx context.Context, q domain.RecommendationQuery) ([]domain.Recommendation, error)
}

// FollowRepository contract interface
type FollowRepository interface {
	FollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

const (
	modeAnonymous = "anonymous"
	modeSolo      = "solo"
	modeBlended   = "blended"
)

type feedService struct {
	recRepo    RecommendationRepository
	followRepo FollowRepository
	cfg        Config
}

func NewFeedService(recRepo RecommendationRepository, followRepo FollowRepository, cfg Config) *feedService {
	return &feedService{
		recRepo:    recRepo,
		followRepo: followRepo,
		cfg:        cfg.withDefaults(),
	}
}

func (s *feedService) DefaultLimit() int {
	return s.cfg.DefaultLimit
}

// Compose returns up to limit recommendations for viewerID, newest first.
// An empty viewerID is an anonymous caller and categoryID is optional.
//
// Viewers who follow someone get the followed authors' latest posts blended
// with community posts; the blend is truncated to limit only after merging.
func (s *feedService) Compose(ctx context.Context, viewerID, categoryID string, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when composing feed")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		logger.Error("Invalid feed limit", "limit", limit)
		return nil, fmt.Errorf("limit must be positive: %w", domain.ErrInvalidArgument)
	}

	start := time.Now()
	defer func() {
		metrics.FeedComposeLatency.Observe(time.Since(start).Seconds())
	}()

	base := []domain.Predicate{domain.VisibleTo(viewerID)}
	if categoryID != "" {
		base = append(base, domain.CategoryEquals(categoryID))
	}

	if viewerID == "" {
		recs, err := s.find(ctx, domain.NewRecommendationQuery(limit, base...), "recent")
		if err != nil {
			return nil, err
		}
		return s.served(modeAnonymous, recs), nil
	}

	following, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		logger.Error("Failed to list followed users", err, "viewer_id", viewerID)
		return nil, fmt.Errorf("failed to list followed users: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	if len(following) == 0 {
		q := domain.NewRecommendationQuery(limit, base...).Where(domain.OwnerNotIn(viewerID))
		recs, err := s.find(ctx, q, "recent")
		if err != nil {
			return nil, err
		}
		return s.served(modeSolo, recs), nil
	}

	socialQ := domain.NewRecommendationQuery(s.cfg.SocialLimit, base...).
		Where(domain.OwnerIn(following...))
	social, err := s.find(ctx, socialQ, "social")
	if err != nil {
		return nil, err
	}

	excluded := make([]string, 0, len(following)+1)
	excluded = append(excluded, following...)
	excluded = append(excluded, viewerID)
	communityQ := domain.NewRecommendationQuery(s.cfg.CommunityLimit, base...).
		Where(domain.OwnerNotIn(excluded...))
	community, err := s.find(ctx, communityQ, "community")
	if err != nil {
		return nil, err
	}

	merged := Merge(social, community, limit)
	logger.Debug("feed blended",
		"viewer_id", viewerID,
		"social", len(social),
		"community", len(community),
		"returned", len(merged),
	)

	return s.served(modeBlended, merged), nil
}

func (s *feedService) find(ctx context.Context, q domain.RecommendationQuery, set string) ([]domain.Recommendation, error) {
	recs, err := s.recRepo.Find(ctx, q)
	if err != nil {
		logger.Error("Failed to fetch feed recommendations", err, "set", set)
		return nil, fmt.Errorf("failed to fetch %s recommendations: %w: %w", set, domain.ErrRepositoryUnavailable, err)
	}
	return recs, nil
}

func (s *feedService) served(mode string, recs []domain.Recommendation) []domain.Recommendation {
	metrics.FeedComposeTotal.WithLabelValues(mode).Inc()
	metrics.FeedItems.Observe(float64(len(recs)))
	return recs
}

// Merge concatenates the social and community sets, orders them newest
// first keeping the relative order of equal timestamps, then truncates to limit.
func Merge(social, community []domain.Recommendation, limit int) []domain.Recommendation {
	merged := make([]domain.Recommendation, 0, len(social)+len(community))
	merged = append(merged, social...)
	merged = append(merged, community...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
