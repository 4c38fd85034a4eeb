package app

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"skycast.app/api"
	"skycast.app/config"
	"skycast.app/database"
	"skycast.app/providers"
	"skycast.app/providers/cache"
	"skycast.app/repository"
	"skycast.app/scheduler"
	"skycast.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	store     *service.WeatherStore
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...", "driver", app.config.Database.Driver)

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	snapshotCache, err := app.createSnapshotCache()
	if err != nil {
		return fmt.Errorf("create snapshot cache: %w", err)
	}

	weatherCfg := app.config.Weather
	timeout := time.Duration(weatherCfg.RequestTimeoutSec) * time.Second
	retryDelay := time.Duration(weatherCfg.RetryDelayMs) * time.Millisecond

	geocoder := providers.Geocoder(providers.NewOpenMeteoGeocoder(weatherCfg.GeocodingBaseURL, timeout))
	reverseGeocoder := providers.NewBigDataCloudReverseGeocoder(weatherCfg.ReverseGeoBaseURL, timeout)

	forecastProvider := providers.ForecastProvider(
		providers.NewOpenMeteoForecastProvider(weatherCfg.ForecastBaseURL, timeout))
	forecastProvider = providers.NewInstrumentedForecastProvider(forecastProvider, "open-meteo")

	airQualityProvider := providers.AirQualityProvider(
		providers.NewOpenMeteoAirQualityProvider(weatherCfg.AirQualityBaseURL, timeout))
	airQualityProvider = providers.NewInstrumentedAirQualityProvider(airQualityProvider, "open-meteo-air-quality")

	if weatherCfg.EnableBreaker {
		forecastProvider = providers.NewBreakerForecastProvider(forecastProvider)
		airQualityProvider = providers.NewBreakerAirQualityProvider(airQualityProvider)
	}
	if weatherCfg.EnableLogging {
		forecastProvider = providers.NewLoggingForecastProvider(forecastProvider, "open-meteo")
		geocoder = providers.NewLoggingGeocoder(geocoder, "open-meteo-geocoding")
	}

	resolver := service.NewLocationResolver(geocoder, reverseGeocoder, weatherCfg.MaxRetries, retryDelay)
	aggregator := service.NewForecastAggregator(forecastProvider, airQualityProvider, weatherCfg.MaxRetries, retryDelay)

	app.store = service.NewWeatherStore(service.StoreOptions{
		Cache:         snapshotCache,
		TTL:           time.Duration(app.config.Cache.TTLMinutes) * time.Minute,
		Resolver:      resolver,
		Aggregator:    aggregator,
		Geocoder:      geocoder,
		FavoritesRepo: repository.NewFavoritesRepository(app.db),
		PrefsRepo:     repository.NewPreferencesRepository(app.db),
		ThrottleEvery: time.Duration(weatherCfg.ThrottleMs) * time.Millisecond,
		DebounceAfter: time.Duration(weatherCfg.DebounceMs) * time.Millisecond,
	})

	app.scheduler = scheduler.NewScheduler(
		app.store,
		time.Duration(app.config.Cache.SweepIntervalMins)*time.Minute,
	)
	app.server = api.NewServer(app.config, app.store)

	slog.Info("Services initialized successfully")
	return nil
}

// createSnapshotCache builds the configured cache implementation wrapped with
// metrics instrumentation.
func (app *Application) createSnapshotCache() (cache.SnapshotCache, error) {
	cacheCfg := app.config.Cache
	ttl := time.Duration(cacheCfg.TTLMinutes) * time.Minute

	var snapshotCache cache.SnapshotCache
	switch cacheCfg.Type {
	case "redis":
		redisTimeout := time.Duration(cacheCfg.RedisTimeoutSec) * time.Second
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         cacheCfg.RedisAddr,
			Password:     cacheCfg.RedisPassword,
			DB:           cacheCfg.RedisDB,
			DialTimeout:  redisTimeout,
			ReadTimeout:  redisTimeout,
			WriteTimeout: redisTimeout,
			TTL:          ttl,
		})
		if err != nil {
			return nil, err
		}
		snapshotCache = redisCache
	default:
		snapshotCache = cache.NewMemoryCache(ttl, cacheCfg.MaxEntries)
	}

	return cache.NewInstrumentedCache(snapshotCache, cacheCfg.Type), nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("start sweep scheduler: %w", err)
	}

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}

// Store returns the weather store façade
func (app *Application) Store() *service.WeatherStore {
	return app.store
}
