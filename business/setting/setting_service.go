package setting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cur8tr/domain"
	"cur8tr/pkg/logger"
)

// SettingRepository contract interface
type SettingRepository interface {
	FindByKey(ctx context.Context, key string) (domain.AppSetting, error)
	// Upsert stores value under key, creating the row when missing.
	Upsert(ctx context.Context, key, value string) (domain.AppSetting, error)
}

const maxKeyLength = 100

type settingService struct {
	settingRepo SettingRepository
}

func NewSettingService(settingRepo SettingRepository) *settingService {
	return &settingService{
		settingRepo: settingRepo,
	}
}

// Get returns the stored value for key, nil when it was never set.
func (s *settingService) Get(ctx context.Context, key string) (*string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when getting setting")
		return nil, fmt.Errorf("context error: %w", err)
	}

	setting, err := s.settingRepo.FindByKey(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find setting", err)
		return nil, fmt.Errorf("failed to find setting: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	return setting.Value, nil
}

func (s *settingService) Set(ctx context.Context, key, value string) (domain.AppSetting, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when setting value")
		return domain.AppSetting{}, fmt.Errorf("context error: %w", err)
	}

	key = strings.TrimSpace(key)
	if key == "" || len(key) > maxKeyLength {
		return domain.AppSetting{}, fmt.Errorf("setting key must be 1-%d characters: %w", maxKeyLength, domain.ErrInvalidArgument)
	}

	setting, err := s.settingRepo.Upsert(ctx, key, value)
	if err != nil {
		logger.Error("Failed to store setting", err)
		return domain.AppSetting{}, fmt.Errorf("failed to store setting: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	logger.Info("setting stored successfully", "key", key)

	return setting, nil
}
