package service

import (
	"context"

	"skycast.app/models"
)

// FavoritesRepositoryInterface persists the favorites list.
type FavoritesRepositoryInterface interface {
	List() ([]models.FavoriteLocation, error)
	Create(favorite *models.FavoriteLocation) error
	DeleteByName(name string) error
}

// PreferencesRepositoryInterface persists opaque key/value settings.
// Get returns an empty string when the key is absent.
type PreferencesRepositoryInterface interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// WeatherStoreInterface is the store façade consumed by the HTTP shell.
type WeatherStoreInterface interface {
	QueryByName(ctx context.Context, query string) (*models.WeatherSnapshot, error)
	QueryByCoordinates(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error)
	Suggest(ctx context.Context, query string) ([]models.LocationSuggestion, error)
	ToggleUnits(ctx context.Context) error
	AddFavorite() error
	RemoveFavorite(name string) error
	Favorites() []models.FavoriteLocation
	Units() models.Units
	Current() *models.WeatherSnapshot
	LastError() error
	IsLoading() bool
	ClearCache()
	ClearExpired() int
}
