package recommendation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// RecommendationRepository contract interface
type RecommendationRepository interface {
	Find(ctx context.Context, q domain.RecommendationQuery) ([]domain.Recommendation, error)
	FindByID(ctx context.Context, id string) (domain.Recommendation, error)
	Create(ctx context.Context, rec *domain.Recommendation, tagNames []string) error
	Update(ctx context.Context, rec *domain.Recommendation, tagNames []string) error
	Delete(ctx context.Context, id string) error
}

// TagRepository contract interface
type TagRepository interface {
	FindAll(ctx context.Context) ([]domain.Tag, error)
}

const (
	defaultProTipsLimit = 4
	maxListLimit        = 100
)

type ListFilter struct {
	UserID     string
	CategoryID string
	HasProTip  bool
	Limit      int
}

type CreateInput struct {
	Title       string   `validate:"required,max=200"`
	Description string   `validate:"max=5000"`
	Rating      int      `validate:"min=1,max=5"`
	ProTip      *string  `validate:"omitempty,max=500"`
	ImageURL    string   `validate:"required"`
	Location    *string  `validate:"omitempty,max=500"`
	Latitude    *float64 `validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `validate:"omitempty,min=-180,max=180"`
	ExternalURL *string  `validate:"omitempty,url"`
	CategoryID  *string
	IsPrivate   bool
	Tags        []string `validate:"max=20,dive,max=50"`
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string  `validate:"omitempty,min=1,max=200"`
	Description *string  `validate:"omitempty,max=5000"`
	Rating      *int     `validate:"omitempty,min=1,max=5"`
	ProTip      *string  `validate:"omitempty,max=500"`
	ImageURL    *string  `validate:"omitempty,min=1"`
	Location    *string  `validate:"omitempty,max=500"`
	Latitude    *float64 `validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `validate:"omitempty,min=-180,max=180"`
	ExternalURL *string  `validate:"omitempty,url"`
	CategoryID  *string
	IsPrivate   *bool
	Tags        *[]string
}

type recommendationService struct {
	recRepo  RecommendationRepository
	tagRepo  TagRepository
	validate *validator.Validate
}

func NewRecommendationService(recRepo RecommendationRepository, tagRepo TagRepository, validate *validator.Validate) *recommendationService {
	return &recommendationService{
		recRepo:  recRepo,
		tagRepo:  tagRepo,
		validate: validate,
	}
}

// List returns recommendations visible to viewerID, newest first.
func (s *recommendationService) List(ctx context.Context, filter ListFilter, viewerID string) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing recommendations")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if filter.Limit < 0 || filter.Limit > maxListLimit {
		return nil, fmt.Errorf("limit must be between 0 and %d: %w", maxListLimit, domain.ErrInvalidArgument)
	}

	q := domain.NewRecommendationQuery(filter.Limit, domain.VisibleTo(viewerID))
	if filter.UserID != "" {
		q = q.Where(domain.OwnerIn(filter.UserID))
	}
	if filter.CategoryID != "" {
		q = q.Where(domain.CategoryEquals(filter.CategoryID))
	}
	if filter.HasProTip {
		q = q.Where(domain.HasProTip())
	}

	recs, err := s.recRepo.Find(ctx, q)
	if err != nil {
		logger.Error("Failed to list recommendations", err)
		return nil, fmt.Errorf("failed to list recommendations: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	return recs, nil
}

// ProTips returns the newest public recommendations carrying a pro tip.
func (s *recommendationService) ProTips(ctx context.Context, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = defaultProTipsLimit
	}
	return s.List(ctx, ListFilter{HasProTip: true, Limit: limit}, "")
}

// Get hides private recommendations from everyone but their owner.
func (s *recommendationService) Get(ctx context.Context, id, viewerID string) (domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get recommendation")
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}

	rec, err := s.recRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Recommendation{}, err
		}
		logger.Error("Failed to find recommendation", err)
		return domain.Recommendation{}, fmt.Errorf("failed to find recommendation: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	if !rec.VisibleTo(viewerID) {
		return domain.Recommendation{}, fmt.Errorf("recommendation %s: %w", id, domain.ErrNotFound)
	}

	return rec, nil
}

func (s *recommendationService) Create(ctx context.Context, ownerID string, in CreateInput) (domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create recommendation")
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}

	if ownerID == "" {
		return domain.Recommendation{}, domain.ErrUnauthorized
	}

	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid recommendation data", err)
		return domain.Recommendation{}, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidArgument)
	}

	if err := ValidateImageURL(in.ImageURL); err != nil {
		return domain.Recommendation{}, err
	}

	if (in.Latitude == nil) != (in.Longitude == nil) {
		return domain.Recommendation{}, fmt.Errorf("latitude and longitude must be provided together: %w", domain.ErrInvalidArgument)
	}

	rec := &domain.Recommendation{
		UserID:      ownerID,
		CategoryID:  emptyToNil(in.CategoryID),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Rating:      in.Rating,
		ProTip:      emptyToNil(in.ProTip),
		ImageURL:    in.ImageURL,
		Location:    emptyToNil(in.Location),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		ExternalURL: emptyToNil(in.ExternalURL),
		IsPrivate:   in.IsPrivate,
	}

	if err := s.recRepo.Create(ctx, rec, NormalizeTags(in.Tags)); err != nil {
		logger.Error("Failed to create recommendation", err)
		return domain.Recommendation{}, fmt.Errorf("failed to create recommendation: %w", err)
	}

	logger.Info("recommendation created successfully", "recommendation_id", rec.ID)

	return *rec, nil
}

func (s *recommendationService) Update(ctx context.Context, ownerID, id string, in UpdateInput) (domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating recommendation")
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid recommendation update", err)
		return domain.Recommendation{}, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidArgument)
	}

	rec, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return domain.Recommendation{}, err
	}

	if in.ImageURL != nil {
		if err := ValidateImageURL(*in.ImageURL); err != nil {
			return domain.Recommendation{}, err
		}
		rec.ImageURL = *in.ImageURL
	}

	if (in.Latitude == nil) != (in.Longitude == nil) {
		return domain.Recommendation{}, fmt.Errorf("latitude and longitude must be updated together: %w", domain.ErrInvalidArgument)
	}
	if in.Latitude != nil {
		rec.Latitude, rec.Longitude = in.Latitude, in.Longitude
	}

	if in.Title != nil {
		rec.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		rec.Description = *in.Description
	}
	if in.Rating != nil {
		rec.Rating = *in.Rating
	}
	if in.ProTip != nil {
		rec.ProTip = emptyToNil(in.ProTip)
	}
	if in.Location != nil {
		rec.Location = emptyToNil(in.Location)
	}
	if in.ExternalURL != nil {
		rec.ExternalURL = emptyToNil(in.ExternalURL)
	}
	if in.CategoryID != nil {
		rec.CategoryID = emptyToNil(in.CategoryID)
	}
	if in.IsPrivate != nil {
		rec.IsPrivate = *in.IsPrivate
	}
	rec.UpdatedAt = time.Now()

	var tags []string
	if in.Tags != nil {
		tags = NormalizeTags(*in.Tags)
		if tags == nil {
			tags = []string{}
		}
	}

	if err := s.recRepo.Update(ctx, &rec, tags); err != nil {
		logger.Error("Failed to update recommendation", err)
		return domain.Recommendation{}, fmt.Errorf("failed to update recommendation: %w", err)
	}

	logger.Info("recommendation updated successfully", "recommendation_id", rec.ID)

	return rec, nil
}

func (s *recommendationService) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting recommendation")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.recRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete recommendation", err)
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}

	logger.Info("recommendation deleted successfully", "recommendation_id", id)

	return nil
}

func (s *recommendationService) Tags(ctx context.Context) ([]domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing tags")
		return nil, fmt.Errorf("context error: %w", err)
	}

	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all tags", err)
		return nil, fmt.Errorf("failed to find tags: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	return tags, nil
}

// owned loads id and checks ownerID may modify it. Private recommendations of
// other users report not found rather than forbidden.
func (s *recommendationService) owned(ctx context.Context, ownerID, id string) (domain.Recommendation, error) {
	rec, err := s.recRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("recommendation not found", err)
		return domain.Recommendation{}, err
	}

	if rec.UserID != ownerID {
		if !rec.VisibleTo(ownerID) {
			return domain.Recommendation{}, fmt.Errorf("recommendation %s: %w", id, domain.ErrNotFound)
		}
		logger.Warn("Recommendation modification by non-owner", "recommendation_id", id, "user_id", ownerID)
		return domain.Recommendation{}, fmt.Errorf("recommendation %s is not yours: %w", id, domain.ErrForbidden)
	}

	return rec, nil
}

var imageURLPrefixes = []string{"/objects/", "http://", "https://"}

// ValidateImageURL accepts uploaded object paths and absolute http(s) URLs.
func ValidateImageURL(u string) error {
	for _, p := range imageURLPrefixes {
		if strings.HasPrefix(u, p) {
			return nil
		}
	}
	return fmt.Errorf("image url must start with /objects/, http:// or https://: %w", domain.ErrInvalidArgument)
}

// NormalizeTags lowercases, trims and dedupes tag names, dropping empties.
func NormalizeTags(names []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
