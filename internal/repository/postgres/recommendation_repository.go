package postgres

import (
	"context"
	"fmt"

	"cur8tr/business/feed"
	"cur8tr/business/geo"
	"cur8tr/business/recommendation"
	"cur8tr/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

var (
	_ feed.RecommendationRepository           = (*RecommendationRepository)(nil)
	_ geo.RecommendationRepository            = (*RecommendationRepository)(nil)
	_ recommendation.RecommendationRepository = (*RecommendationRepository)(nil)
)

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{
		DB: db,
	}
}

// Find runs q newest first. Predicates are ANDed.
func (r *RecommendationRepository) Find(ctx context.Context, q domain.RecommendationQuery) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	tx := r.DB.WithContext(ctx).Model(&domain.Recommendation{})
	for _, p := range q.Predicates {
		var err error
		if tx, err = applyPredicate(tx, p); err != nil {
			return nil, err
		}
	}

	tx = tx.Order("created_at DESC").Order("id")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var recs []domain.Recommendation
	if err := tx.Preload("Tags").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}

	return recs, nil
}

func applyPredicate(tx *gorm.DB, p domain.Predicate) (*gorm.DB, error) {
	switch p.Kind {
	case domain.PredicateOwnerIn:
		if len(p.UserIDs) == 0 {
			return tx.Where("1 = 0"), nil
		}
		return tx.Where("user_id IN ?", p.UserIDs), nil
	case domain.PredicateOwnerNotIn:
		if len(p.UserIDs) == 0 {
			return tx, nil
		}
		return tx.Where("user_id NOT IN ?", p.UserIDs), nil
	case domain.PredicateCategoryEquals:
		return tx.Where("category_id = ?", p.CategoryID), nil
	case domain.PredicateVisibleTo:
		if p.ViewerID == "" {
			return tx.Where("is_private = ?", false), nil
		}
		return tx.Where("(is_private = ? OR user_id = ?)", false, p.ViewerID), nil
	case domain.PredicateHasLocation:
		return tx.Where("latitude IS NOT NULL AND longitude IS NOT NULL"), nil
	case domain.PredicateHasProTip:
		return tx.Where("pro_tip IS NOT NULL AND pro_tip <> ''"), nil
	default:
		return nil, fmt.Errorf("unsupported predicate %s", p.Kind)
	}
}

func (r *RecommendationRepository) FindByID(ctx context.Context, id string) (domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}

	var rec domain.Recommendation
	if err := r.DB.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&rec).Error; err != nil {
		return domain.Recommendation{}, translate(err, "find recommendation")
	}

	return rec, nil
}

// Create inserts rec and links tagNames, creating missing tags.
func (r *RecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation, tagNames []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return translate(err, "create recommendation")
		}

		tags, err := linkTags(tx, rec.ID, tagNames)
		if err != nil {
			return err
		}
		rec.Tags = tags

		return nil
	})
}

var updatableColumns = []string{
	"category_id", "title", "description", "rating", "pro_tip", "image_url",
	"location", "latitude", "longitude", "external_url", "is_private", "updated_at",
}

// Update saves every column of rec. A nil tagNames leaves tags untouched,
// a non-nil one replaces them.
func (r *RecommendationRepository) Update(ctx context.Context, rec *domain.Recommendation, tagNames []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(rec).Select(updatableColumns).Updates(rec)
		if result.Error != nil {
			return translate(result.Error, "update recommendation")
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("update recommendation: %w", domain.ErrNotFound)
		}

		if tagNames == nil {
			return nil
		}

		if err := tx.Where("recommendation_id = ?", rec.ID).Delete(&domain.RecommendationTag{}).Error; err != nil {
			return fmt.Errorf("failed to clear recommendation tags: %w", err)
		}

		tags, err := linkTags(tx, rec.ID, tagNames)
		if err != nil {
			return err
		}
		rec.Tags = tags

		return nil
	})
}

// Delete removes the recommendation and everything hanging off it.
func (r *RecommendationRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := []interface{}{
			&domain.RecommendationTag{},
			&domain.Like{},
			&domain.Comment{},
			&domain.CuratorRec{},
			&domain.SectionRecommendation{},
		}
		for _, model := range children {
			if err := tx.Where("recommendation_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete recommendation children: %w", err)
			}
		}

		result := tx.Where("id = ?", id).Delete(&domain.Recommendation{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete recommendation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete recommendation: %w", domain.ErrNotFound)
		}

		return nil
	})
}

// linkTags get-or-creates each tag by name and attaches it to recID.
func linkTags(tx *gorm.DB, recID string, names []string) ([]domain.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		candidate := domain.Tag{Name: name}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&candidate).Error; err != nil {
			return nil, fmt.Errorf("failed to create tag %q: %w", name, err)
		}

		var tag domain.Tag
		if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
			return nil, fmt.Errorf("failed to load tag %q: %w", name, err)
		}

		link := domain.RecommendationTag{RecommendationID: recID, TagID: tag.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return nil, fmt.Errorf("failed to link tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

type TagRepository struct {
	DB *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{
		DB: db,
	}
}

func (r *TagRepository) FindAll(ctx context.Context) ([]domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var tags []domain.Tag
	if err := r.DB.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}

	return tags, nil
}
