package curator

import (
	"context"
	"fmt"

	"cur8tr/domain"
	"cur8tr/pkg/logger"
)

// CuratorRepository contract interface
type CuratorRepository interface {
	// FindRecent returns picks of public recommendations, newest first.
	FindRecent(ctx context.Context, limit int) ([]domain.CuratorRec, error)
	RecommendationIDs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, pick *domain.CuratorRec) error
	DeleteByRecommendation(ctx context.Context, recommendationID string) error
}

// RecommendationFinder contract interface
type RecommendationFinder interface {
	FindByID(ctx context.Context, id string) (domain.Recommendation, error)
}

const defaultLimit = 8

type curatorService struct {
	curatorRepo CuratorRepository
	recs        RecommendationFinder
}

func NewCuratorService(curatorRepo CuratorRepository, recs RecommendationFinder) *curatorService {
	return &curatorService{
		curatorRepo: curatorRepo,
		recs:        recs,
	}
}

// List returns the most recently curated public recommendations.
func (s *curatorService) List(ctx context.Context, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing curator picks")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = defaultLimit
	}

	picks, err := s.curatorRepo.FindRecent(ctx, limit)
	if err != nil {
		logger.Error("Failed to find curator picks", err)
		return nil, fmt.Errorf("failed to find curator picks: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	recs := make([]domain.Recommendation, 0, len(picks))
	for _, p := range picks {
		if p.Recommendation == nil {
			continue
		}
		recs = append(recs, *p.Recommendation)
	}

	return recs, nil
}

func (s *curatorService) IDs(ctx context.Context) ([]string, error) {
	ids, err := s.curatorRepo.RecommendationIDs(ctx)
	if err != nil {
		logger.Error("Failed to list curator pick ids", err)
		return nil, fmt.Errorf("failed to list curator picks: %w: %w", domain.ErrRepositoryUnavailable, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Add picks a public recommendation. Picking it twice is a no-op.
func (s *curatorService) Add(ctx context.Context, curatorID, recommendationID string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when adding curator pick")
		return fmt.Errorf("context error: %w", err)
	}

	rec, err := s.recs.FindByID(ctx, recommendationID)
	if err != nil {
		logger.Error("Recommendation not found for curator pick", err)
		return err
	}
	if rec.IsPrivate {
		return fmt.Errorf("private recommendations cannot be curated: %w", domain.ErrInvalidArgument)
	}

	if err := s.curatorRepo.Create(ctx, &domain.CuratorRec{RecommendationID: recommendationID, CuratorID: curatorID}); err != nil {
		logger.Error("Failed to add curator pick", err)
		return fmt.Errorf("failed to add curator pick: %w", err)
	}

	logger.Info("curator pick added successfully", "recommendation_id", recommendationID)

	return nil
}

func (s *curatorService) Remove(ctx context.Context, recommendationID string) error {
	if err := s.curatorRepo.DeleteByRecommendation(ctx, recommendationID); err != nil {
		logger.Error("Failed to remove curator pick", err)
		return err
	}

	logger.Info("curator pick removed successfully", "recommendation_id", recommendationID)

	return nil
}
