package adminrecommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cur8tr/business/recommendation"
	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// AdminRecommendRepository contract interface
type AdminRecommendRepository interface {
	Find(ctx context.Context, visibleOnly bool) ([]domain.AdminRecommend, error)
	FindByID(ctx context.Context, id string) (domain.AdminRecommend, error)
	Create(ctx context.Context, card *domain.AdminRecommend) error
	Update(ctx context.Context, card *domain.AdminRecommend) error
	Delete(ctx context.Context, id string) error
	ToggleVisibility(ctx context.Context, id string) (domain.AdminRecommend, error)
}

// SectionFinder contract interface
type SectionFinder interface {
	FindByID(ctx context.Context, id string) (domain.Section, error)
}

type CreateInput struct {
	Title       string  `validate:"required,max=200"`
	Subtitle    *string `validate:"omitempty,max=300"`
	ImageURL    string  `validate:"required"`
	ExternalURL string  `validate:"required,url"`
	Price       *string `validate:"omitempty,max=50"`
	IsVisible   *bool
	SectionID   *string
}

// UpdateInput is a partial update; nil fields are left unchanged and an empty
// SectionID detaches the card.
type UpdateInput struct {
	Title       *string `validate:"omitempty,min=1,max=200"`
	Subtitle    *string `validate:"omitempty,max=300"`
	ImageURL    *string `validate:"omitempty,min=1"`
	ExternalURL *string `validate:"omitempty,url"`
	Price       *string `validate:"omitempty,max=50"`
	IsVisible   *bool
	SectionID   *string
}

type adminRecommendService struct {
	cardRepo AdminRecommendRepository
	sections SectionFinder
	validate *validator.Validate
}

func NewAdminRecommendService(cardRepo AdminRecommendRepository, sections SectionFinder, validate *validator.Validate) *adminRecommendService {
	return &adminRecommendService{
		cardRepo: cardRepo,
		sections: sections,
		validate: validate,
	}
}

// List returns the cards newest first, only the visible ones when visibleOnly.
func (s *adminRecommendService) List(ctx context.Context, visibleOnly bool) ([]domain.AdminRecommend, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing admin recommends")
		return nil, fmt.Errorf("context error: %w", err)
	}

	cards, err := s.cardRepo.Find(ctx, visibleOnly)
	if err != nil {
		logger.Error("Failed to find admin recommends", err)
		return nil, fmt.Errorf("failed to find admin recommends: %w: %w", domain.ErrRepositoryUnavailable, err)
	}
	if cards == nil {
		cards = []domain.AdminRecommend{}
	}

	return cards, nil
}

func (s *adminRecommendService) Get(ctx context.Context, id string) (domain.AdminRecommend, error) {
	card, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Admin recommend not found", err)
		return domain.AdminRecommend{}, err
	}

	return card, nil
}

func (s *adminRecommendService) Create(ctx context.Context, adminID string, in CreateInput) (domain.AdminRecommend, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating admin recommend")
		return domain.AdminRecommend{}, fmt.Errorf("context error: %w", err)
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid admin recommend data", err)
		return domain.AdminRecommend{}, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidArgument)
	}
	if err := recommendation.ValidateImageURL(in.ImageURL); err != nil {
		return domain.AdminRecommend{}, err
	}

	sectionID, err := s.resolveSection(ctx, in.SectionID)
	if err != nil {
		return domain.AdminRecommend{}, err
	}

	card := &domain.AdminRecommend{
		Title:       in.Title,
		Subtitle:    emptyToNil(in.Subtitle),
		ImageURL:    in.ImageURL,
		ExternalURL: in.ExternalURL,
		Price:       emptyToNil(in.Price),
		IsVisible:   in.IsVisible == nil || *in.IsVisible,
		SectionID:   sectionID,
		CreatedBy:   adminID,
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		logger.Error("Failed to create admin recommend", err)
		return domain.AdminRecommend{}, fmt.Errorf("failed to create admin recommend: %w", err)
	}

	logger.Info("admin recommend created successfully", "admin_recommend_id", card.ID)

	return *card, nil
}

func (s *adminRecommendService) Update(ctx context.Context, id string, in UpdateInput) (domain.AdminRecommend, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating admin recommend")
		return domain.AdminRecommend{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid admin recommend update", err)
		return domain.AdminRecommend{}, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidArgument)
	}

	card, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Admin recommend not found", err)
		return domain.AdminRecommend{}, err
	}

	if in.Title != nil {
		card.Title = strings.TrimSpace(*in.Title)
	}
	if in.Subtitle != nil {
		card.Subtitle = emptyToNil(in.Subtitle)
	}
	if in.ImageURL != nil {
		if err := recommendation.ValidateImageURL(*in.ImageURL); err != nil {
			return domain.AdminRecommend{}, err
		}
		card.ImageURL = *in.ImageURL
	}
	if in.ExternalURL != nil {
		card.ExternalURL = *in.ExternalURL
	}
	if in.Price != nil {
		card.Price = emptyToNil(in.Price)
	}
	if in.IsVisible != nil {
		card.IsVisible = *in.IsVisible
	}
	if in.SectionID != nil {
		if card.SectionID, err = s.resolveSection(ctx, in.SectionID); err != nil {
			return domain.AdminRecommend{}, err
		}
	}
	card.UpdatedAt = time.Now()

	if err := s.cardRepo.Update(ctx, &card); err != nil {
		logger.Error("Failed to update admin recommend", err)
		return domain.AdminRecommend{}, fmt.Errorf("failed to update admin recommend: %w", err)
	}

	logger.Info("admin recommend updated successfully", "admin_recommend_id", card.ID)

	return card, nil
}

func (s *adminRecommendService) Delete(ctx context.Context, id string) error {
	if err := s.cardRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete admin recommend", err)
		return err
	}

	logger.Info("admin recommend deleted successfully", "admin_recommend_id", id)

	return nil
}

// ToggleVisibility flips whether the card shows on public listings.
func (s *adminRecommendService) ToggleVisibility(ctx context.Context, id string) (domain.AdminRecommend, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when toggling admin recommend")
		return domain.AdminRecommend{}, fmt.Errorf("context error: %w", err)
	}

	card, err := s.cardRepo.ToggleVisibility(ctx, id)
	if err != nil {
		logger.Error("Failed to toggle admin recommend visibility", err)
		return domain.AdminRecommend{}, err
	}

	logger.Info("admin recommend visibility toggled", "admin_recommend_id", id, "visible", card.IsVisible)

	return card, nil
}

// resolveSection returns nil for an absent or empty id and checks that any
// other id names an existing section.
func (s *adminRecommendService) resolveSection(ctx context.Context, id *string) (*string, error) {
	sectionID := emptyToNil(id)
	if sectionID == nil {
		return nil, nil
	}

	if _, err := s.sections.FindByID(ctx, *sectionID); err != nil {
		logger.Error("Failed to resolve section for admin recommend", err)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown section %s: %w", *sectionID, domain.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("failed to resolve section: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	return sectionID, nil
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
