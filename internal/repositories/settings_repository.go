package repositories

import (
	"context"
	"fmt"

	"medipay/internal/models"

	"gorm.io/gorm"
)

// SettingsRepository reads and updates the platform commission rates.
// A missing row is created with zero rates, matching a fresh install.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.CommissionSettings, error)
	Update(ctx context.Context, settings *models.CommissionSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.CommissionSettings, error) {
	var settings models.CommissionSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *models.CommissionSettings) error {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
