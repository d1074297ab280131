package db

import (
	"context"
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KeyValueRepository struct {
	database *gorm.DB
}

func NewKeyValueRepository(database *gorm.DB) *KeyValueRepository {
	return &KeyValueRepository{database: database}
}

func (repo *KeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	entry := models.KeyValueEntry{}
	result := repo.database.WithContext(ctx).
		Where("key = ?", key).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return "", false, result.Error
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (repo *KeyValueRepository) Set(ctx context.Context, key string, value string) error {
	entry := models.KeyValueEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (repo *KeyValueRepository) Delete(ctx context.Context, key string) error {
	return repo.database.WithContext(ctx).Where("key = ?", key).Delete(&models.KeyValueEntry{}).Error
}
