package section

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// SectionRepository contract interface
type SectionRepository interface {
	Find(ctx context.Context) ([]domain.Section, error)
	FindByID(ctx context.Context, id string) (domain.Section, error)
	Create(ctx context.Context, section *domain.Section) error
	Update(ctx context.Context, section *domain.Section) error
	Delete(ctx context.Context, id string) error
	// Recommendations returns the public recommendations linked to the
	// section in display order.
	Recommendations(ctx context.Context, sectionID string) ([]domain.Recommendation, error)
	// AddRecommendation appends a link, failing with ErrInvalidArgument once
	// the section already holds capacity links.
	AddRecommendation(ctx context.Context, sectionID, recommendationID string, capacity int) (domain.SectionRecommendation, error)
	RemoveRecommendation(ctx context.Context, sectionID, recommendationID string) error
}

// CardFinder contract interface
type CardFinder interface {
	FindVisibleBySection(ctx context.Context, sectionID string) ([]domain.AdminRecommend, error)
}

// RecommendationFinder contract interface
type RecommendationFinder interface {
	FindByID(ctx context.Context, id string) (domain.Recommendation, error)
}

type CreateInput struct {
	Title        string  `validate:"required,max=200"`
	Subtitle     *string `validate:"omitempty,max=300"`
	DisplayOrder int     `validate:"min=0"`
}

type UpdateInput struct {
	Title        *string `validate:"omitempty,min=1,max=200"`
	Subtitle     *string `validate:"omitempty,max=300"`
	DisplayOrder *int    `validate:"omitempty,min=0"`
}

type sectionService struct {
	sectionRepo SectionRepository
	cards       CardFinder
	recs        RecommendationFinder
	validate    *validator.Validate
}

func NewSectionService(sectionRepo SectionRepository, cards CardFinder, recs RecommendationFinder, validate *validator.Validate) *sectionService {
	return &sectionService{
		sectionRepo: sectionRepo,
		cards:       cards,
		recs:        recs,
		validate:    validate,
	}
}

// List returns sections by display order, newest first within an order.
func (s *sectionService) List(ctx context.Context) ([]domain.Section, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing sections")
		return nil, fmt.Errorf("context error: %w", err)
	}

	sections, err := s.sectionRepo.Find(ctx)
	if err != nil {
		logger.Error("Failed to find sections", err)
		return nil, fmt.Errorf("failed to find sections: %w: %w", domain.ErrRepositoryUnavailable, err)
	}
	if sections == nil {
		sections = []domain.Section{}
	}

	return sections, nil
}

// ListWithRecommendations returns every section with its linked
// recommendations and its visible admin cards.
func (s *sectionService) ListWithRecommendations(ctx context.Context) ([]domain.SectionWithRecommendations, error) {
	sections, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SectionWithRecommendations, 0, len(sections))
	for _, sec := range sections {
		recs, err := s.sectionRepo.Recommendations(ctx, sec.ID)
		if err != nil {
			logger.Error("Failed to load section recommendations", err)
			return nil, fmt.Errorf("failed to load section recommendations: %w: %w", domain.ErrRepositoryUnavailable, err)
		}
		cards, err := s.cards.FindVisibleBySection(ctx, sec.ID)
		if err != nil {
			logger.Error("Failed to load section cards", err)
			return nil, fmt.Errorf("failed to load section cards: %w: %w", domain.ErrRepositoryUnavailable, err)
		}
		if recs == nil {
			recs = []domain.Recommendation{}
		}
		if cards == nil {
			cards = []domain.AdminRecommend{}
		}

		out = append(out, domain.SectionWithRecommendations{
			Section:         sec,
			Recommendations: recs,
			AdminRecommends: cards,
		})
	}

	return out, nil
}

func (s *sectionService) Get(ctx context.Context, id string) (domain.Section, error) {
	sec, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Section not found", err)
		return domain.Section{}, err
	}

	return sec, nil
}

func (s *sectionService) Create(ctx context.Context, adminID string, in CreateInput) (domain.Section, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating section")
		return domain.Section{}, fmt.Errorf("context error: %w", err)
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid section data", err)
		return domain.Section{}, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidArgument)
	}

	sec := &domain.Section{
		Title:        in.Title,
		Subtitle:     emptyToNil(in.Subtitle),
		DisplayOrder: in.DisplayOrder,
		CreatedBy:    adminID,
	}

	if err := s.sectionRepo.Create(ctx, sec); err != nil {
		logger.Error("Failed to create section", err)
		return domain.Section{}, fmt.Errorf("failed to create section: %w", err)
	}

	logger.Info("section created successfully", "section_id", sec.ID)

	return *sec, nil
}

func (s *sectionService) Update(ctx context.Context, id string, in UpdateInput) (domain.Section, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating section")
		return domain.Section{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid section update", err)
		return domain.Section{}, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidArgument)
	}

	sec, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Section not found", err)
		return domain.Section{}, err
	}

	if in.Title != nil {
		sec.Title = strings.TrimSpace(*in.Title)
	}
	if in.Subtitle != nil {
		sec.Subtitle = emptyToNil(in.Subtitle)
	}
	if in.DisplayOrder != nil {
		sec.DisplayOrder = *in.DisplayOrder
	}
	sec.UpdatedAt = time.Now()

	if err := s.sectionRepo.Update(ctx, &sec); err != nil {
		logger.Error("Failed to update section", err)
		return domain.Section{}, fmt.Errorf("failed to update section: %w", err)
	}

	logger.Info("section updated successfully", "section_id", sec.ID)

	return sec, nil
}

// Delete removes the section with its links. Cards placed in it are kept
// without a section.
func (s *sectionService) Delete(ctx context.Context, id string) error {
	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete section", err)
		return err
	}

	logger.Info("section deleted successfully", "section_id", id)

	return nil
}

// AddRecommendation links a public recommendation at the end of the section.
func (s *sectionService) AddRecommendation(ctx context.Context, sectionID, recommendationID string) (domain.SectionRecommendation, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when adding section recommendation")
		return domain.SectionRecommendation{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.sectionRepo.FindByID(ctx, sectionID); err != nil {
		logger.Error("Section not found", err)
		return domain.SectionRecommendation{}, err
	}

	rec, err := s.recs.FindByID(ctx, recommendationID)
	if err != nil {
		logger.Error("Recommendation not found for section", err)
		return domain.SectionRecommendation{}, err
	}
	if rec.IsPrivate {
		return domain.SectionRecommendation{}, fmt.Errorf("private recommendations cannot be featured: %w", domain.ErrInvalidArgument)
	}

	link, err := s.sectionRepo.AddRecommendation(ctx, sectionID, recommendationID, domain.MaxSectionRecommendations)
	if err != nil {
		logger.Error("Failed to add recommendation to section", err)
		return domain.SectionRecommendation{}, fmt.Errorf("failed to add recommendation to section: %w", err)
	}

	logger.Info("recommendation added to section", "section_id", sectionID, "recommendation_id", recommendationID)

	return link, nil
}

func (s *sectionService) RemoveRecommendation(ctx context.Context, sectionID, recommendationID string) error {
	if err := s.sectionRepo.RemoveRecommendation(ctx, sectionID, recommendationID); err != nil {
		logger.Error("Failed to remove recommendation from section", err)
		return err
	}

	logger.Info("recommendation removed from section", "section_id", sectionID, "recommendation_id", recommendationID)

	return nil
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
