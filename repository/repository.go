// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"skycast.app/models"
)

// FavoritesRepository handles data access operations for favorite locations
type FavoritesRepository struct {
	db *gorm.DB
}

// NewFavoritesRepository creates a new repository for favorite locations
func NewFavoritesRepository(db *gorm.DB) *FavoritesRepository {
	return &FavoritesRepository{db: db}
}

// List retrieves all favorites in insertion order
func (r *FavoritesRepository) List() ([]models.FavoriteLocation, error) {
	var favorites []models.FavoriteLocation
	result := r.db.Order("created_at asc").Find(&favorites)
	if result.Error != nil {
		slog.Error("list favorites", "error", result.Error)
		return nil, result.Error
	}
	return favorites, nil
}

// Create persists a new favorite location
func (r *FavoritesRepository) Create(favorite *models.FavoriteLocation) error {
	result := r.db.Create(favorite)
	if result.Error != nil {
		slog.Error("create favorite", "name", favorite.Name, "error", result.Error)
		return result.Error
	}
	slog.Debug("favorite created", "name", favorite.Name, "id", favorite.ID)
	return nil
}

// DeleteByName removes the favorite with the given name, if present
func (r *FavoritesRepository) DeleteByName(name string) error {
	result := r.db.Where("name = ?", name).Delete(&models.FavoriteLocation{})
	if result.Error != nil {
		slog.Error("delete favorite", "name", name, "error", result.Error)
		return result.Error
	}
	return nil
}

// PreferencesRepository handles data access operations for persisted settings
type PreferencesRepository struct {
	db *gorm.DB
}

// NewPreferencesRepository creates a new repository for preferences
func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// Get retrieves the value stored under key, or an empty string when absent
func (r *PreferencesRepository) Get(key string) (string, error) {
	var preference models.Preference
	result := r.db.Where("key = ?", key).First(&preference)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		slog.Error("get preference", "key", key, "error", result.Error)
		return "", result.Error
	}
	return preference.Value, nil
}

// Set stores value under key, overwriting any previous value
func (r *PreferencesRepository) Set(key, value string) error {
	var preference models.Preference
	result := r.db.Where("key = ?", key).First(&preference)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.Error("set preference", "key", key, "error", result.Error)
			return result.Error
		}
		preference = models.Preference{Key: key, Value: value}
		return r.db.Create(&preference).Error
	}

	preference.Value = value
	return r.db.Save(&preference).Error
}
