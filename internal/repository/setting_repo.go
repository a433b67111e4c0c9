package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classforge/contest-api/internal/models"
)

// SettingRepository exposes persistence operations for contest settings.
type SettingRepository interface {
	GetAll(ctx context.Context) ([]models.Setting, error)
	Set(ctx context.Context, key, value string) error
}

// NewSettingRepository constructs a setting repository and seeds defaults.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

type settingRepository struct {
	db *gorm.DB
}

// SeedDefaults inserts default setting rows if they are missing.
func SeedDefaults(ctx context.Context, db *gorm.DB) error {
	defaults := []models.Setting{
		{Key: models.SettingBlindMode, Value: "false"},
		{Key: models.SettingContestOpen, Value: "true"},
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error
}

func (r *settingRepository) GetAll(ctx context.Context) ([]models.Setting, error) {
	var settings []models.Setting
	if err := r.db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}
