package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skycast.app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.FavoriteLocation{}, &models.Preference{}))
	return db
}

func TestFavoritesRepository(t *testing.T) {
	t.Run("lists in insertion order", func(t *testing.T) {
		repo := NewFavoritesRepository(setupTestDB(t))

		require.NoError(t, repo.Create(&models.FavoriteLocation{Name: "London", Lat: 51.5, Lon: -0.12}))
		require.NoError(t, repo.Create(&models.FavoriteLocation{Name: "Paris", Lat: 48.85, Lon: 2.35}))

		favorites, err := repo.List()
		require.NoError(t, err)
		require.Len(t, favorites, 2)
		assert.Equal(t, "London", favorites[0].Name)
		assert.Equal(t, "Paris", favorites[1].Name)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		repo := NewFavoritesRepository(setupTestDB(t))

		require.NoError(t, repo.Create(&models.FavoriteLocation{Name: "London", Lat: 51.5, Lon: -0.12}))
		err := repo.Create(&models.FavoriteLocation{Name: "London", Lat: 51.5, Lon: -0.12})
		assert.Error(t, err)
	})

	t.Run("deletes by name", func(t *testing.T) {
		repo := NewFavoritesRepository(setupTestDB(t))
		require.NoError(t, repo.Create(&models.FavoriteLocation{Name: "London", Lat: 51.5, Lon: -0.12}))

		require.NoError(t, repo.DeleteByName("London"))

		favorites, err := repo.List()
		require.NoError(t, err)
		assert.Empty(t, favorites)
	})

	t.Run("deleting an absent name succeeds", func(t *testing.T) {
		repo := NewFavoritesRepository(setupTestDB(t))
		assert.NoError(t, repo.DeleteByName("Atlantis"))
	})
}

func TestPreferencesRepository(t *testing.T) {
	t.Run("absent key reads as empty", func(t *testing.T) {
		repo := NewPreferencesRepository(setupTestDB(t))

		value, err := repo.Get("units")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("set then get round trips", func(t *testing.T) {
		repo := NewPreferencesRepository(setupTestDB(t))

		require.NoError(t, repo.Set("units", "imperial"))

		value, err := repo.Get("units")
		require.NoError(t, err)
		assert.Equal(t, "imperial", value)
	})

	t.Run("set overwrites a previous value", func(t *testing.T) {
		repo := NewPreferencesRepository(setupTestDB(t))

		require.NoError(t, repo.Set("units", "imperial"))
		require.NoError(t, repo.Set("units", "metric"))

		value, err := repo.Get("units")
		require.NoError(t, err)
		assert.Equal(t, "metric", value)

		var count int64
		setupRow := repo.db.Model(&models.Preference{}).Where("key = ?", "units").Count(&count)
		require.NoError(t, setupRow.Error)
		assert.EqualValues(t, 1, count)
	})
}
