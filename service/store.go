package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"skycast.app/errors"
	"skycast.app/models"
	"skycast.app/providers"
	"skycast.app/providers/cache"
)

const (
	unitsPreferenceKey = "units"
	suggestionCount    = 5
)

// State is the consistent view handed to observers after every mutation.
type State struct {
	Snapshot  *models.WeatherSnapshot
	Loading   bool
	Err       *errors.AppError
	Units     models.Units
	Favorites []models.FavoriteLocation
}

// Observer is notified after any store mutation completes.
type Observer func(State)

// WeatherStore is the orchestration façade: it owns the snapshot cache, the
// favorites list, and the unit preference, and tracks loading/error state.
type WeatherStore struct {
	mu sync.Mutex

	cache      cache.SnapshotCache
	ttl        time.Duration
	resolver   *LocationResolver
	aggregator *ForecastAggregator
	geocoder   providers.Geocoder

	favoritesRepo FavoritesRepositoryInterface
	prefsRepo     PreferencesRepositoryInterface

	throttle  *Throttle
	debouncer *Debouncer

	units     models.Units
	favorites []models.FavoriteLocation
	current   *models.WeatherSnapshot
	lastErr   *errors.AppError
	loading   bool

	observers  map[int]Observer
	observerID int
}

// StoreOptions bundles the store's collaborators and tunables.
type StoreOptions struct {
	Cache         cache.SnapshotCache
	TTL           time.Duration
	Resolver      *LocationResolver
	Aggregator    *ForecastAggregator
	Geocoder      providers.Geocoder
	FavoritesRepo FavoritesRepositoryInterface
	PrefsRepo     PreferencesRepositoryInterface
	ThrottleEvery time.Duration
	DebounceAfter time.Duration
}

// NewWeatherStore creates the store and loads persisted preferences and
// favorites. Malformed persisted state is treated as absent, never fatal.
func NewWeatherStore(opts StoreOptions) *WeatherStore {
	if opts.TTL <= 0 {
		opts.TTL = cache.DefaultTTL
	}
	if opts.ThrottleEvery <= 0 {
		opts.ThrottleEvery = 1000 * time.Millisecond
	}
	if opts.DebounceAfter <= 0 {
		opts.DebounceAfter = 300 * time.Millisecond
	}

	store := &WeatherStore{
		cache:         opts.Cache,
		ttl:           opts.TTL,
		resolver:      opts.Resolver,
		aggregator:    opts.Aggregator,
		geocoder:      opts.Geocoder,
		favoritesRepo: opts.FavoritesRepo,
		prefsRepo:     opts.PrefsRepo,
		throttle:      NewThrottle(opts.ThrottleEvery),
		debouncer:     NewDebouncer(opts.DebounceAfter),
		units:         models.UnitsMetric,
		observers:     make(map[int]Observer),
	}

	store.loadPersistedState()
	return store
}

func (s *WeatherStore) loadPersistedState() {
	if s.prefsRepo != nil {
		value, err := s.prefsRepo.Get(unitsPreferenceKey)
		if err != nil {
			slog.Warn("load unit preference failed, using default", "error", err)
		} else if units := models.Units(value); units.IsValid() {
			s.units = units
		}
	}

	if s.favoritesRepo != nil {
		favorites, err := s.favoritesRepo.List()
		if err != nil {
			slog.Warn("load favorites failed, starting empty", "error", err)
			return
		}
		s.favorites = favorites
	}
}

// Subscribe registers an observer and returns the matching unsubscribe.
func (s *WeatherStore) Subscribe(observer Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.observerID
	s.observerID++
	s.observers[id] = observer

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// notify hands every observer a consistent copy of the final state.
func (s *WeatherStore) notify() {
	s.mu.Lock()
	state := s.stateLocked()
	observers := make([]Observer, 0, len(s.observers))
	for _, observer := range s.observers {
		observers = append(observers, observer)
	}
	s.mu.Unlock()

	for _, observer := range observers {
		observer(state)
	}
}

// stateLocked builds a State copy. Must be called while holding the mutex.
func (s *WeatherStore) stateLocked() State {
	state := State{
		Loading: s.loading,
		Err:     s.lastErr,
		Units:   s.units,
	}
	if s.current != nil {
		snapshot := *s.current
		state.Snapshot = &snapshot
	}
	state.Favorites = make([]models.FavoriteLocation, len(s.favorites))
	copy(state.Favorites, s.favorites)
	return state
}

// QueryByName fetches the snapshot for a free-text location query.
func (s *WeatherStore) QueryByName(ctx context.Context, query string) (*models.WeatherSnapshot, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError("query cannot be empty")
	}

	return s.fetch(ctx, cache.QueryKey(query), func(ctx context.Context) (*ResolvedLocation, error) {
		return s.resolver.ResolveByName(ctx, query)
	})
}

// QueryByCoordinates fetches the snapshot for a coordinate pair.
func (s *WeatherStore) QueryByCoordinates(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	return s.fetch(ctx, cache.CoordinateKey(lat, lon), func(ctx context.Context) (*ResolvedLocation, error) {
		return s.resolver.ResolveByCoordinates(ctx, lat, lon), nil
	})
}

// fetch is the single throttled entry point both query paths funnel into.
// The cache check always precedes network issuance; the throttle only gates
// network-triggering invocations.
func (s *WeatherStore) fetch(
	ctx context.Context,
	key string,
	resolve func(context.Context) (*ResolvedLocation, error),
) (*models.WeatherSnapshot, error) {
	s.mu.Lock()
	if entry, found := s.cache.Get(key); found && !entry.IsExpired(s.ttl, time.Now()) {
		s.cache.Touch(key)
		snapshot := entry.Snapshot
		s.current = &snapshot
		s.lastErr = nil
		s.mu.Unlock()
		s.notify()
		return &snapshot, nil
	}

	if !s.throttle.Allow() {
		current := s.current
		s.mu.Unlock()
		slog.Debug("fetch coalesced by throttle", "key", key)
		return current, nil
	}

	s.loading = true
	s.mu.Unlock()
	s.notify()

	location, err := resolve(ctx)
	if err != nil {
		return nil, s.fail(err)
	}

	snapshot, err := s.aggregator.Aggregate(ctx, location.Lat, location.Lon, location.DisplayName, s.Units())
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.cache.Put(key, *snapshot)
	s.current = snapshot
	s.lastErr = nil
	s.loading = false
	s.mu.Unlock()
	s.notify()

	return snapshot, nil
}

// fail classifies the error, records it, and clears the loading flag. The
// recorded error stays visible until the next operation overwrites it.
func (s *WeatherStore) fail(err error) *errors.AppError {
	appErr := errors.Classify(err)

	s.mu.Lock()
	s.lastErr = appErr
	s.loading = false
	s.mu.Unlock()
	s.notify()

	return appErr
}

// ToggleUnits flips the unit preference, clears the cache (cached values have
// units baked in), and re-fetches the displayed snapshot. On re-fetch failure
// the preference is rolled back best-effort and a typed error recorded.
func (s *WeatherStore) ToggleUnits(ctx context.Context) error {
	s.mu.Lock()
	previous := s.units
	next := models.UnitsImperial
	if previous == models.UnitsImperial {
		next = models.UnitsMetric
	}
	s.units = next
	s.persistUnitsLocked(next)
	s.cache.Clear()

	var displayed *models.WeatherSnapshot
	if s.current != nil {
		snapshot := *s.current
		displayed = &snapshot
	}
	s.loading = displayed != nil
	s.mu.Unlock()
	s.notify()

	if displayed == nil {
		return nil
	}

	coords := displayed.Coordinates
	snapshot, err := s.aggregator.Aggregate(ctx, coords.Lat, coords.Lon, displayed.LocationName, next)
	if err != nil {
		s.mu.Lock()
		s.units = previous
		s.persistUnitsLocked(previous)
		s.mu.Unlock()
		return s.fail(err)
	}

	s.mu.Lock()
	s.cache.Put(cache.CoordinateKey(coords.Lat, coords.Lon), *snapshot)
	s.current = snapshot
	s.lastErr = nil
	s.loading = false
	s.mu.Unlock()
	s.notify()

	return nil
}

// persistUnitsLocked writes the preference. Must be called while holding the
// mutex; persistence failure only logs, the in-memory preference stands.
func (s *WeatherStore) persistUnitsLocked(units models.Units) {
	if s.prefsRepo == nil {
		return
	}
	if err := s.prefsRepo.Set(unitsPreferenceKey, string(units)); err != nil {
		slog.Warn("persist unit preference failed", "units", units, "error", err)
	}
}

// AddFavorite pins the currently displayed snapshot's location. Adding a name
// that is already present leaves the list unchanged.
func (s *WeatherStore) AddFavorite() error {
	s.mu.Lock()

	if s.current == nil {
		s.mu.Unlock()
		return errors.NewValidationError("no location is currently displayed")
	}

	name := s.current.LocationName
	for _, favorite := range s.favorites {
		if favorite.Name == name {
			s.mu.Unlock()
			return nil
		}
	}

	favorite := models.FavoriteLocation{
		Name: name,
		Lat:  s.current.Coordinates.Lat,
		Lon:  s.current.Coordinates.Lon,
	}

	if s.favoritesRepo != nil {
		if err := s.favoritesRepo.Create(&favorite); err != nil {
			s.mu.Unlock()
			return errors.NewDatabaseError("persist favorite", err)
		}
	}

	s.favorites = append(s.favorites, favorite)
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveFavorite removes the favorite with the given name. Removing an absent
// name is a no-op.
func (s *WeatherStore) RemoveFavorite(name string) error {
	s.mu.Lock()

	index := -1
	for i, favorite := range s.favorites {
		if favorite.Name == name {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return nil
	}

	if s.favoritesRepo != nil {
		if err := s.favoritesRepo.DeleteByName(name); err != nil {
			s.mu.Unlock()
			return errors.NewDatabaseError("remove favorite", err)
		}
	}

	s.favorites = append(s.favorites[:index], s.favorites[index+1:]...)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Suggest returns geocoding candidates for a typeahead query. Calls are
// debounced: a newer call supersedes a pending one.
func (s *WeatherStore) Suggest(ctx context.Context, query string) ([]models.LocationSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError("query cannot be empty")
	}

	var suggestions []models.LocationSuggestion
	err := s.debouncer.Run(ctx, func(ctx context.Context) error {
		results, err := s.geocoder.Search(ctx, query, suggestionCount)
		if err != nil {
			return err
		}
		suggestions = make([]models.LocationSuggestion, 0, len(results))
		for _, result := range results {
			suggestions = append(suggestions, models.LocationSuggestion{
				Name:        result.Name,
				AdminRegion: result.Admin1,
				Country:     result.Country,
				Lat:         result.Latitude,
				Lon:         result.Longitude,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Favorites returns a copy of the favorites list.
func (s *WeatherStore) Favorites() []models.FavoriteLocation {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites := make([]models.FavoriteLocation, len(s.favorites))
	copy(favorites, s.favorites)
	return favorites
}

// Units returns the current unit preference.
func (s *WeatherStore) Units() models.Units {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units
}

// Current returns a copy of the displayed snapshot, or nil.
func (s *WeatherStore) Current() *models.WeatherSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	snapshot := *s.current
	return &snapshot
}

// LastError returns the last classified error, or nil.
func (s *WeatherStore) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastErr == nil {
		return nil
	}
	return s.lastErr
}

// IsLoading reports whether a fetch is in progress.
func (s *WeatherStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ClearCache removes all cached snapshots.
func (s *WeatherStore) ClearCache() {
	s.cache.Clear()
}

// ClearExpired sweeps time-expired entries and returns how many were removed.
func (s *WeatherStore) ClearExpired() int {
	removed := s.cache.SweepExpired()
	if removed > 0 {
		slog.Info("cache sweep", "removed", removed)
	}
	return removed
}
