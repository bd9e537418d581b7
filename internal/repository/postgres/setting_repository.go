package postgres

import (
	"context"
	"fmt"
	"time"

	"cur8tr/business/setting"
	"cur8tr/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	DB *gorm.DB
}

var _ setting.SettingRepository = (*SettingRepository)(nil)

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{
		DB: db,
	}
}

func (r *SettingRepository) FindByKey(ctx context.Context, key string) (domain.AppSetting, error) {
	if err := ctx.Err(); err != nil {
		return domain.AppSetting{}, fmt.Errorf("context error: %w", err)
	}

	var s domain.AppSetting
	if err := r.DB.WithContext(ctx).Where("key = ?", key).First(&s).Error; err != nil {
		return domain.AppSetting{}, translate(err, "find setting")
	}

	return s, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string) (domain.AppSetting, error) {
	if err := ctx.Err(); err != nil {
		return domain.AppSetting{}, fmt.Errorf("context error: %w", err)
	}

	s := domain.AppSetting{Key: key, Value: &value, UpdatedAt: time.Now()}
	err := r.DB.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(&s).Error
	if err != nil {
		return domain.AppSetting{}, fmt.Errorf("failed to upsert setting: %w", err)
	}

	return s, nil
}
