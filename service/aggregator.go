package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"skycast.app/models"
	"skycast.app/providers"
)

const (
	maxDailyEntries  = 5
	maxHourlyEntries = 24

	// Open-Meteo does not report visibility; the UI expects a value, so a
	// fixed clear-air default is used.
	defaultVisibilityMeters = 10000

	openMeteoTimeLayout = "2006-01-02T15:04"
	openMeteoDateLayout = "2006-01-02"
)

// ForecastAggregator issues the weather and air-quality requests for a
// resolved location and reduces the raw arrays into the canonical snapshot.
type ForecastAggregator struct {
	forecastProvider   providers.ForecastProvider
	airQualityProvider providers.AirQualityProvider
	maxRetries         int
	retryDelay         time.Duration
}

// NewForecastAggregator creates a new aggregator over the given providers
func NewForecastAggregator(
	forecastProvider providers.ForecastProvider,
	airQualityProvider providers.AirQualityProvider,
	maxRetries int,
	retryDelay time.Duration,
) *ForecastAggregator {
	return &ForecastAggregator{
		forecastProvider:   forecastProvider,
		airQualityProvider: airQualityProvider,
		maxRetries:         maxRetries,
		retryDelay:         retryDelay,
	}
}

// Aggregate fetches weather and air quality concurrently and normalizes the
// result. A weather failure is fatal; an air-quality failure only leaves the
// snapshot's AirQuality field absent.
func (a *ForecastAggregator) Aggregate(
	ctx context.Context,
	lat, lon float64,
	displayName string,
	units models.Units,
) (*models.WeatherSnapshot, error) {
	var (
		wg          sync.WaitGroup
		weatherData *providers.ForecastData
		weatherErr  error
		airData     *providers.AirQualityData
		airErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		weatherData, weatherErr = providers.DoWithRetry(ctx, func() (*providers.ForecastData, error) {
			return a.forecastProvider.FetchForecast(ctx, lat, lon, units)
		}, a.maxRetries, a.retryDelay)
	}()
	go func() {
		defer wg.Done()
		airData, airErr = providers.DoWithRetry(ctx, func() (*providers.AirQualityData, error) {
			return a.airQualityProvider.FetchAirQuality(ctx, lat, lon)
		}, a.maxRetries, a.retryDelay)
	}()
	wg.Wait()

	if weatherErr != nil {
		return nil, weatherErr
	}
	if airErr != nil {
		slog.Warn("air quality fetch failed, proceeding without", "lat", lat, "lon", lon, "error", airErr)
		airData = nil
	}

	return a.normalize(weatherData, airData, lat, lon, displayName), nil
}

// dayBounds holds one calendar day's sunrise/sunset in the response's local
// time zone.
type dayBounds struct {
	date    string
	sunrise time.Time
	sunset  time.Time
}

func (a *ForecastAggregator) normalize(
	data *providers.ForecastData,
	airData *providers.AirQualityData,
	lat, lon float64,
	displayName string,
) *models.WeatherSnapshot {
	loc := time.FixedZone(data.Timezone, data.UTCOffsetSeconds)
	bounds := buildDayBounds(data, loc)

	snapshot := &models.WeatherSnapshot{
		LocationName:   displayName,
		Coordinates:    models.Coordinates{Lat: lat, Lon: lon},
		Current:        a.normalizeCurrent(data, airData, bounds, loc),
		DailyForecast:  a.normalizeDaily(data),
		HourlyForecast: a.normalizeHourly(data, bounds, loc),
	}

	if snapshot.LocationName == "" {
		snapshot.LocationName = fmt.Sprintf("%.2f, %.2f", lat, lon)
	}

	return snapshot
}

func buildDayBounds(data *providers.ForecastData, loc *time.Location) []dayBounds {
	bounds := make([]dayBounds, 0, len(data.Daily.Time))
	for i, date := range data.Daily.Time {
		if i >= len(data.Daily.Sunrise) || i >= len(data.Daily.Sunset) {
			break
		}
		sunrise, err := time.ParseInLocation(openMeteoTimeLayout, data.Daily.Sunrise[i], loc)
		if err != nil {
			continue
		}
		sunset, err := time.ParseInLocation(openMeteoTimeLayout, data.Daily.Sunset[i], loc)
		if err != nil {
			continue
		}
		bounds = append(bounds, dayBounds{date: date, sunrise: sunrise, sunset: sunset})
	}
	return bounds
}

// isNight finds the calendar day bracketing the instant and checks it against
// that day's sunrise and sunset. Defaults to day when no day matches.
func isNight(instant time.Time, bounds []dayBounds) bool {
	date := instant.Format(openMeteoDateLayout)
	for _, day := range bounds {
		if day.date == date {
			return instant.Before(day.sunrise) || instant.After(day.sunset)
		}
	}
	return false
}

func (a *ForecastAggregator) normalizeCurrent(
	data *providers.ForecastData,
	airData *providers.AirQualityData,
	bounds []dayBounds,
	loc *time.Location,
) models.CurrentConditions {
	night := false
	if instant, err := time.ParseInLocation(openMeteoTimeLayout, data.Current.Time, loc); err == nil {
		night = isNight(instant, bounds)
	}

	info := TranslateWeatherCode(data.Current.WeatherCode, night)

	current := models.CurrentConditions{
		Temp:        roundToInt(data.Current.Temperature2m),
		FeelsLike:   roundToInt(data.Current.ApparentTemperature),
		Humidity:    roundToInt(data.Current.RelativeHumidity2m),
		WindSpeed:   data.Current.WindSpeed10m,
		Description: info.Description,
		IconID:      info.IconID,
		Pressure:    roundToInt(data.Current.SurfacePressure),
		Visibility:  defaultVisibilityMeters,
	}

	// Today's extremes and sun times come from the first daily entry so the
	// current block stays consistent with the 5-day table.
	if len(data.Daily.Time) > 0 {
		current.TempMin = roundToInt(floatAt(data.Daily.Temperature2mMin, 0))
		current.TempMax = roundToInt(floatAt(data.Daily.Temperature2mMax, 0))
	}
	if len(bounds) > 0 {
		current.Sunrise = bounds[0].sunrise.Unix()
		current.Sunset = bounds[0].sunset.Unix()
	}

	if airData != nil {
		current.AirQuality = &models.AirQuality{
			AQI:  roundToInt(airData.Current.USAQI),
			CO:   roundToInt(airData.Current.CarbonMonoxide),
			NO2:  roundToInt(airData.Current.NitrogenDioxide),
			O3:   roundToInt(airData.Current.Ozone),
			PM25: roundToInt(airData.Current.PM25),
			PM10: roundToInt(airData.Current.PM10),
		}
	}

	return current
}

func (a *ForecastAggregator) normalizeDaily(data *providers.ForecastData) []models.DailyForecast {
	count := len(data.Daily.Time)
	if count > maxDailyEntries {
		count = maxDailyEntries
	}

	daily := make([]models.DailyForecast, 0, count)
	for i := 0; i < count; i++ {
		tempMin := floatAt(data.Daily.Temperature2mMin, i)
		tempMax := floatAt(data.Daily.Temperature2mMax, i)
		info := TranslateWeatherCode(intAt(data.Daily.WeatherCode, i), false)

		daily = append(daily, models.DailyForecast{
			Date:                data.Daily.Time[i],
			Temp:                roundToInt((tempMax + tempMin) / 2),
			TempMin:             roundToInt(tempMin),
			TempMax:             roundToInt(tempMax),
			Description:         info.Description,
			IconID:              info.IconID,
			Humidity:            roundToInt(floatAt(data.Daily.RelativeHumidity2mMean, i)),
			WindSpeed:           floatAt(data.Daily.WindSpeed10mMax, i),
			PrecipitationChance: roundToInt(floatAt(data.Daily.PrecipitationProbabilityMax, i)),
		})
	}
	return daily
}

func (a *ForecastAggregator) normalizeHourly(
	data *providers.ForecastData,
	bounds []dayBounds,
	loc *time.Location,
) []models.HourlyForecast {
	count := len(data.Hourly.Time)
	if count > maxHourlyEntries {
		count = maxHourlyEntries
	}

	hourly := make([]models.HourlyForecast, 0, count)
	for i := 0; i < count; i++ {
		instant, err := time.ParseInLocation(openMeteoTimeLayout, data.Hourly.Time[i], loc)
		if err != nil {
			continue
		}

		info := TranslateWeatherCode(intAt(data.Hourly.WeatherCode, i), isNight(instant, bounds))

		hourly = append(hourly, models.HourlyForecast{
			Time:        instant.Format("15:04"),
			Temp:        roundToInt(floatAt(data.Hourly.Temperature2m, i)),
			IconID:      info.IconID,
			Description: info.Description,
		})
	}
	return hourly
}

func roundToInt(value float64) int {
	return int(math.Round(value))
}

func floatAt(values []float64, index int) float64 {
	if index < len(values) {
		return values[index]
	}
	return 0
}

func intAt(values []int, index int) int {
	if index < len(values) {
		return values[index]
	}
	return 0
}
