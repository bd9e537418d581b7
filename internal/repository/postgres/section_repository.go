package postgres

import (
	"context"
	"fmt"

	"cur8tr/business/adminrecommend"
	"cur8tr/business/section"
	"cur8tr/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SectionRepository struct {
	DB *gorm.DB
}

var (
	_ section.SectionRepository    = (*SectionRepository)(nil)
	_ adminrecommend.SectionFinder = (*SectionRepository)(nil)
)

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{
		DB: db,
	}
}

func (r *SectionRepository) Find(ctx context.Context) ([]domain.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var sections []domain.Section
	if err := r.DB.WithContext(ctx).Order("display_order ASC, created_at DESC").Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("failed to find sections: %w", err)
	}

	return sections, nil
}

func (r *SectionRepository) FindByID(ctx context.Context, id string) (domain.Section, error) {
	if err := ctx.Err(); err != nil {
		return domain.Section{}, fmt.Errorf("context error: %w", err)
	}

	var sec domain.Section
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&sec).Error; err != nil {
		return domain.Section{}, translate(err, "find section")
	}

	return sec, nil
}

func (r *SectionRepository) Create(ctx context.Context, sec *domain.Section) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(sec).Error; err != nil {
		return translate(err, "create section")
	}

	return nil
}

func (r *SectionRepository) Update(ctx context.Context, sec *domain.Section) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(sec).
		Select("title", "subtitle", "display_order", "updated_at").
		Updates(sec)
	if result.Error != nil {
		return translate(result.Error, "update section")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update section: %w", domain.ErrNotFound)
	}

	return nil
}

// Delete drops the section and its links and detaches its cards.
func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", id).Delete(&domain.SectionRecommendation{}).Error; err != nil {
			return fmt.Errorf("failed to delete section links: %w", err)
		}

		err := tx.Model(&domain.AdminRecommend{}).
			Where("section_id = ?", id).
			Update("section_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach section cards: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&domain.Section{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete section: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete section: %w", domain.ErrNotFound)
		}

		return nil
	})
}

func (r *SectionRepository) Recommendations(ctx context.Context, sectionID string) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var recs []domain.Recommendation
	err := r.DB.WithContext(ctx).
		Joins("JOIN section_recommendations sr ON sr.recommendation_id = recommendations.id").
		Where("sr.section_id = ? AND recommendations.is_private = ?", sectionID, false).
		Preload("Tags").
		Order("sr.display_order ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find section recommendations: %w", err)
	}

	return recs, nil
}

// AddRecommendation appends the link under a row lock on the section so two
// admins cannot both take the last slot.
func (r *SectionRepository) AddRecommendation(ctx context.Context, sectionID, recommendationID string, capacity int) (domain.SectionRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.SectionRecommendation{}, fmt.Errorf("context error: %w", err)
	}

	link := domain.SectionRecommendation{SectionID: sectionID, RecommendationID: recommendationID}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sec domain.Section
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", sectionID).First(&sec).Error; err != nil {
			return translate(err, "lock section")
		}

		var count int64
		if err := tx.Model(&domain.SectionRecommendation{}).Where("section_id = ?", sectionID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count section links: %w", err)
		}
		if count >= int64(capacity) {
			return fmt.Errorf("section can only have up to %d recommendations: %w", capacity, domain.ErrInvalidArgument)
		}

		link.DisplayOrder = int(count)
		if err := tx.Create(&link).Error; err != nil {
			return translate(err, "create section link")
		}

		return nil
	})
	if err != nil {
		return domain.SectionRecommendation{}, err
	}

	return link, nil
}

func (r *SectionRepository) RemoveRecommendation(ctx context.Context, sectionID, recommendationID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("section_id = ? AND recommendation_id = ?", sectionID, recommendationID).
		Delete(&domain.SectionRecommendation{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete section link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete section link: %w", domain.ErrNotFound)
	}

	return nil
}
