package providers

import (
	"context"

	"skycast.app/models"
)

// Geocoder resolves a free-text place name into ranked candidates.
type Geocoder interface {
	Search(ctx context.Context, query string, count int) ([]GeoResult, error)
}

// ReverseGeocoder resolves a coordinate pair into a place name.
type ReverseGeocoder interface {
	Lookup(ctx context.Context, lat, lon float64) (*PlaceName, error)
}

// ForecastProvider fetches raw current/hourly/daily weather data.
type ForecastProvider interface {
	FetchForecast(ctx context.Context, lat, lon float64, units models.Units) (*ForecastData, error)
}

// AirQualityProvider fetches current pollutant concentrations and AQI.
type AirQualityProvider interface {
	FetchAirQuality(ctx context.Context, lat, lon float64) (*AirQualityData, error)
}

// GeoResult is one forward-geocoding candidate.
type GeoResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
}

// PlaceName is the reverse-geocoding result.
type PlaceName struct {
	City        string `json:"city"`
	Locality    string `json:"locality"`
	Subdivision string `json:"principalSubdivision"`
	Country     string `json:"countryName"`
}

// ForecastData mirrors the Open-Meteo forecast response shape.
type ForecastData struct {
	Timezone         string `json:"timezone"`
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`
	Current          struct {
		Time                string  `json:"time"`
		Temperature2m       float64 `json:"temperature_2m"`
		RelativeHumidity2m  float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		SurfacePressure     float64 `json:"surface_pressure"`
		WindSpeed10m        float64 `json:"wind_speed_10m"`
		WeatherCode         int     `json:"weather_code"`
	} `json:"current"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature2m []float64 `json:"temperature_2m"`
		WeatherCode   []int     `json:"weather_code"`
	} `json:"hourly"`
	Daily struct {
		Time                        []string  `json:"time"`
		WeatherCode                 []int     `json:"weather_code"`
		Temperature2mMax            []float64 `json:"temperature_2m_max"`
		Temperature2mMin            []float64 `json:"temperature_2m_min"`
		Sunrise                     []string  `json:"sunrise"`
		Sunset                      []string  `json:"sunset"`
		PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
		WindSpeed10mMax             []float64 `json:"wind_speed_10m_max"`
		RelativeHumidity2mMean      []float64 `json:"relative_humidity_2m_mean"`
	} `json:"daily"`
}

// AirQualityData mirrors the Open-Meteo air quality response shape.
type AirQualityData struct {
	Current struct {
		USAQI           float64 `json:"us_aqi"`
		CarbonMonoxide  float64 `json:"carbon_monoxide"`
		NitrogenDioxide float64 `json:"nitrogen_dioxide"`
		Ozone           float64 `json:"ozone"`
		PM25            float64 `json:"pm2_5"`
		PM10            float64 `json:"pm10"`
	} `json:"current"`
}
