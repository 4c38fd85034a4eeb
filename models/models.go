// Package models defines data structures used throughout the application
package models

import (
	"time"

	"gorm.io/gorm"
)

// Units is the process-wide measurement system preference.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// IsValid reports whether the value is one of the two supported systems.
// Anything else (corrupt stored value included) is treated as absent.
func (u Units) IsValid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AirQuality holds current pollutant concentrations and the AQI figure.
type AirQuality struct {
	AQI  int `json:"aqi"`
	CO   int `json:"co"`
	NO2  int `json:"no2"`
	O3   int `json:"o3"`
	PM25 int `json:"pm2_5"`
	PM10 int `json:"pm10"`
}

// CurrentConditions is the normalized "right now" block of a snapshot.
type CurrentConditions struct {
	Temp        int         `json:"temp"`
	FeelsLike   int         `json:"feels_like"`
	TempMin     int         `json:"temp_min"`
	TempMax     int         `json:"temp_max"`
	Humidity    int         `json:"humidity"`
	WindSpeed   float64     `json:"wind_speed"`
	Description string      `json:"description"`
	IconID      string      `json:"icon_id"`
	Sunrise     int64       `json:"sunrise"`
	Sunset      int64       `json:"sunset"`
	Pressure    int         `json:"pressure"`
	Visibility  int         `json:"visibility"`
	UVIndex     *int        `json:"uv_index,omitempty"`
	AirQuality  *AirQuality `json:"air_quality,omitempty"`
}

// DailyForecast is one normalized day of the 5-day table.
type DailyForecast struct {
	Date                string  `json:"date"`
	Temp                int     `json:"temp"`
	TempMin             int     `json:"temp_min"`
	TempMax             int     `json:"temp_max"`
	Description         string  `json:"description"`
	IconID              string  `json:"icon_id"`
	Humidity            int     `json:"humidity"`
	WindSpeed           float64 `json:"wind_speed"`
	PrecipitationChance int     `json:"precipitation_chance"`
}

// HourlyForecast is one normalized hour of the 24-hour strip.
type HourlyForecast struct {
	Time        string `json:"time"`
	Temp        int    `json:"temp"`
	IconID      string `json:"icon_id"`
	Description string `json:"description"`
}

// WeatherSnapshot is the canonical weather representation every upstream
// provider format is reduced to. Immutable once produced.
type WeatherSnapshot struct {
	LocationName   string            `json:"location_name"`
	Coordinates    Coordinates       `json:"coordinates"`
	Current        CurrentConditions `json:"current"`
	DailyForecast  []DailyForecast   `json:"daily_forecast"`
	HourlyForecast []HourlyForecast  `json:"hourly_forecast"`
}

// FavoriteLocation is a user-pinned place. Names are unique.
type FavoriteLocation struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	Lat       float64        `json:"lat" gorm:"not null"`
	Lon       float64        `json:"lon" gorm:"not null"`
	CreatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Preference is an opaque persisted key/value setting (e.g. the unit system).
type Preference struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"uniqueIndex;not null"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"-"`
}

// LocationSuggestion is one geocoding candidate for a typeahead query.
type LocationSuggestion struct {
	Name        string  `json:"name"`
	AdminRegion string  `json:"admin_region,omitempty"`
	Country     string  `json:"country,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
