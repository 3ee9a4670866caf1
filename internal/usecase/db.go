// Package usecase hosts the sync/cache orchestrator: the single
// coordinating service between the quota-constrained remote API, the
// persisted cache and the consumers listening on the sync pulse.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"SePushMonitor/internal/broadcast"
	"SePushMonitor/internal/domain"
	"SePushMonitor/internal/logpanel"
	"SePushMonitor/internal/mapper"
	"SePushMonitor/internal/ports"
	"SePushMonitor/internal/schedule"
	"SePushMonitor/internal/storage"
)

// DBDeps wires all collaborators into the orchestrator.
type DBDeps struct {
	API     ports.PushAPI
	Store   *storage.Store
	Locator ports.Locator
	Clock   ports.Clock
	Logger  *slog.Logger
	Panel   *logpanel.Panel
}

// DB owns every entity: consumers hold only transient projections obtained
// after a sync pulse, never references they can mutate. Each read resolves
// from the persisted cache first and falls through to the gateway.
type DB struct {
	api     ports.PushAPI
	store   *storage.Store
	locator ports.Locator
	clock   ports.Clock
	logger  *slog.Logger
	panel   *logpanel.Panel
	pulse   *broadcast.Emitter
}

// NewDB constructs the orchestration component; lifecycle is application
// lifetime.
func NewDB(deps DBDeps) *DB {
	return &DB{
		api:     deps.API,
		store:   deps.Store,
		locator: deps.Locator,
		clock:   deps.Clock,
		logger:  deps.Logger,
		panel:   deps.Panel,
		pulse:   broadcast.New(),
	}
}

// Subscribe registers a listener on the sync pulse. The pulse carries no
// payload; listeners re-query the orchestrator for current values.
func (d *DB) Subscribe() (<-chan struct{}, func()) {
	return d.pulse.Subscribe()
}

// GetOrDefaultUserSettings resolves settings from cache or synthesizes and
// persists the documented default. It always resolves to a value.
func (d *DB) GetOrDefaultUserSettings() domain.Result[domain.UserSettings] {
	if cached := storage.Get[domain.UserSettings](d.store, storage.KeyUserSettings); cached.IsSuccess {
		return cached
	}

	defaults := domain.DefaultUserSettings()
	if saved := storage.Save(d.store, storage.KeyUserSettings, defaults, false, 0); !saved.IsSuccess {
		d.warn("persisting default settings failed: " + flatten(saved.Errors))
	}
	return domain.Ok(defaults)
}

// GetOrDefaultSavedAreas resolves the user's area set, initializing an
// empty set on first run. It always resolves to a value.
func (d *DB) GetOrDefaultSavedAreas() domain.Result[domain.SavedAreas] {
	if cached := storage.Get[domain.SavedAreas](d.store, storage.KeySavedAreas); cached.IsSuccess {
		return cached
	}

	defaults := domain.SavedAreas{Areas: []domain.Area{}}
	if saved := storage.Save(d.store, storage.KeySavedAreas, defaults, false, 0); !saved.IsSuccess {
		d.warn("persisting default saved areas failed: " + flatten(saved.Errors))
	}
	return domain.Ok(defaults)
}

// UpdateUserSettings overwrites the settings entry unconditionally and
// pulses on success; on failure the store keeps its prior value.
func (d *DB) UpdateUserSettings(settings domain.UserSettings) domain.ResultBase {
	if saved := storage.Save(d.store, storage.KeyUserSettings, settings, false, 0); !saved.IsSuccess {
		d.error("updating settings failed: " + flatten(saved.Errors))
		return saved
	}
	d.pulse.Publish()
	return domain.OkBase()
}

// UpdateSavedAreas overwrites the whole saved-area set and pulses on
// success.
func (d *DB) UpdateSavedAreas(areas domain.SavedAreas) domain.ResultBase {
	if saved := storage.Save(d.store, storage.KeySavedAreas, areas, false, 0); !saved.IsSuccess {
		d.error("updating saved areas failed: " + flatten(saved.Errors))
		return saved
	}
	d.pulse.Publish()
	return domain.OkBase()
}

// RegisterAPIKey validates a candidate credential against the remote API
// (not quota-counted) and commits it into the settings entry on acceptance.
func (d *DB) RegisterAPIKey(ctx context.Context, key string) domain.ResultBase {
	if validated := d.api.ValidateAPIKey(ctx, key); !validated.IsSuccess {
		d.error("API key rejected: " + flatten(validated.Errors))
		return validated
	}

	settings := d.GetOrDefaultUserSettings().Data
	settings.APIKey = key
	return d.UpdateUserSettings(settings)
}

// GetStatus is a cache-first read-through of the global outage status.
func (d *DB) GetStatus(ctx context.Context) domain.Result[domain.Status] {
	return d.getStatus(ctx, false)
}

func (d *DB) getStatus(ctx context.Context, skipCache bool) domain.Result[domain.Status] {
	if !skipCache {
		if cached := storage.Get[domain.Status](d.store, storage.KeyStatus); cached.IsSuccess {
			return cached
		}
	}

	resp := d.api.GetStatus(ctx)
	if !resp.IsSuccess {
		return domain.FailFrom[domain.Status](resp.ResultBase)
	}

	entity := mapper.ToStatus(resp.Data)
	if saved := storage.Save(d.store, storage.KeyStatus, entity, true, 0); !saved.IsSuccess {
		return domain.FailFrom[domain.Status](saved)
	}
	d.trackUsage(domain.EndpointGetStatus)
	d.pulse.Publish()
	return domain.Ok(entity)
}

// GetAreaInformation resolves one area's schedule. Synced schedules
// accumulate in a single growing cache entry, so a hit is a lookup inside
// that array.
func (d *DB) GetAreaInformation(ctx context.Context, areaInfoID string) domain.Result[domain.AreaInfo] {
	known := storage.Get[[]domain.AreaInfo](d.store, storage.KeyAreaInformation)
	if known.IsSuccess {
		for _, info := range known.Data {
			if info.AreaInfoID == areaInfoID {
				return domain.Ok(info)
			}
		}
	}

	resp := d.api.GetAreaInformation(ctx, areaInfoID)
	if !resp.IsSuccess {
		return domain.FailFrom[domain.AreaInfo](resp.ResultBase)
	}

	entity := mapper.ToAreaInfo(resp.Data, areaInfoID)
	accumulated := append(known.Data, entity)
	if saved := storage.Save(d.store, storage.KeyAreaInformation, accumulated, true, 0); !saved.IsSuccess {
		return domain.FailFrom[domain.AreaInfo](saved)
	}
	d.trackUsage(domain.EndpointGetAreaInformation)
	d.pulse.Publish()
	return domain.Ok(entity)
}

// GetAreasNearby is a read-through whose cache validity additionally
// requires the stored coordinates to equal the queried ones.
func (d *DB) GetAreasNearby(ctx context.Context, lat, long float64) domain.Result[domain.AreasNearby] {
	return d.getAreasNearby(ctx, lat, long, false)
}

func (d *DB) getAreasNearby(ctx context.Context, lat, long float64, skipCache bool) domain.Result[domain.AreasNearby] {
	if !skipCache {
		cached := storage.Get[domain.AreasNearby](d.store, storage.KeyAreasNearby)
		if cached.IsSuccess && cached.Data.Latitude == lat && cached.Data.Longitude == long {
			return cached
		}
	}

	resp := d.api.GetAreasNearby(ctx, lat, long)
	if !resp.IsSuccess {
		return domain.FailFrom[domain.AreasNearby](resp.ResultBase)
	}

	entity := mapper.ToAreasNearby(resp.Data, lat, long)
	if saved := storage.Save(d.store, storage.KeyAreasNearby, entity, true, 0); !saved.IsSuccess {
		return domain.FailFrom[domain.AreasNearby](saved)
	}
	d.trackUsage(domain.EndpointGetAreasNearby)
	d.pulse.Publish()
	return domain.Ok(entity)
}

// SearchArea resolves a name search, caching the latest result set.
func (d *DB) SearchArea(ctx context.Context, name string) domain.Result[domain.AreaSearch] {
	if cached := storage.Get[domain.AreaSearch](d.store, storage.KeyAreaSearchResults); cached.IsSuccess {
		return cached
	}

	resp := d.api.SearchArea(ctx, name)
	if !resp.IsSuccess {
		return domain.FailFrom[domain.AreaSearch](resp.ResultBase)
	}

	entity := mapper.ToAreaSearch(resp.Data)
	if saved := storage.Save(d.store, storage.KeyAreaSearchResults, entity, true, 0); !saved.IsSuccess {
		return domain.FailFrom[domain.AreaSearch](saved)
	}
	d.trackUsage(domain.EndpointSearchArea)
	d.pulse.Publish()
	return domain.Ok(entity)
}

// GetTopicsNearby is a read-through of the crowd-sourced topic feed.
func (d *DB) GetTopicsNearby(ctx context.Context, lat, long float64) domain.Result[domain.TopicsNearby] {
	if cached := storage.Get[domain.TopicsNearby](d.store, storage.KeyTopicsNearby); cached.IsSuccess {
		return cached
	}

	resp := d.api.GetTopicsNearby(ctx, lat, long)
	if !resp.IsSuccess {
		return domain.FailFrom[domain.TopicsNearby](resp.ResultBase)
	}

	entity := mapper.ToTopicsNearby(resp.Data)
	if saved := storage.Save(d.store, storage.KeyTopicsNearby, entity, true, 0); !saved.IsSuccess {
		return domain.FailFrom[domain.TopicsNearby](saved)
	}
	d.trackUsage(domain.EndpointGetTopicsNearby)
	d.pulse.Publish()
	return domain.Ok(entity)
}

// GetLatestOrDefaultAllowance always calls the remote allowance endpoint
// (the call is not quota-counted), merges the fresh quota figures with the
// previously cached breakdown and persists with a TTL that lapses at the
// next quota-reset boundary. Fresh figures never reset nonzero counters.
func (d *DB) GetLatestOrDefaultAllowance(ctx context.Context) domain.Result[domain.Allowance] {
	resp := d.api.GetAllowance(ctx)
	if !resp.IsSuccess {
		d.warn("allowance refresh failed: " + flatten(resp.Errors))
		return domain.FailFrom[domain.Allowance](resp.ResultBase)
	}

	// Direct cache read, not the read-through path: this call is itself
	// responsible for refreshing that entry.
	var prior *domain.UsageBreakdown
	if cached := storage.Get[domain.Allowance](d.store, storage.KeyAllowance); cached.IsSuccess {
		prior = &cached.Data.APIUtilizationBreakdown
	}

	entity := mapper.ToAllowance(resp.Data, prior)
	ttl := schedule.MinutesUntilNextUTCDay(d.clock.Now())
	if saved := storage.Save(d.store, storage.KeyAllowance, entity, true, ttl); !saved.IsSuccess {
		return domain.FailFrom[domain.Allowance](saved)
	}
	d.pulse.Publish()
	return domain.Ok(entity)
}

// IsRegistered reports whether an unexpired settings entry with a non-empty
// API key is on record. It never performs a network call.
func (d *DB) IsRegistered() bool {
	if exists := d.store.Exists(storage.KeyUserSettings); !exists.IsSuccess {
		return false
	}
	settings := storage.Get[domain.UserSettings](d.store, storage.KeyUserSettings)
	return settings.IsSuccess && settings.Data.APIKey != ""
}

// InitializeApplication runs the ordered bootstrap: device location, then
// areas nearby and status with the cache bypassed. A stage failure aborts
// the remainder and names the stage.
func (d *DB) InitializeApplication(ctx context.Context) domain.ResultBase {
	position := d.locator.CurrentPosition(ctx)
	if !position.IsSuccess {
		return d.initFailure("location", position.Errors)
	}

	nearby := d.getAreasNearby(ctx, position.Data.Latitude, position.Data.Longitude, true)
	if !nearby.IsSuccess {
		return d.initFailure("areas-nearby", nearby.Errors)
	}

	if status := d.getStatus(ctx, true); !status.IsSuccess {
		return d.initFailure("status", status.Errors)
	}

	d.logger.Info("application initialized")
	return domain.OkBase()
}

// Reset clears the API-managed cache entries; a hard reset also clears the
// user-owned settings, saved areas and allowance.
func (d *DB) Reset(hard bool) domain.ResultBase {
	keys := storage.APIManagedKeys()
	if hard {
		keys = append(keys, storage.UserManagedKeys()...)
	}

	if cleared := d.store.Clear(keys...); !cleared.IsSuccess {
		d.error("reset failed: " + flatten(cleared.Errors))
		return cleared
	}
	d.pulse.Publish()
	return domain.OkBase()
}

// trackUsage bumps the persisted breakdown counter for one endpoint via a
// payload-only update, so the allowance entry keeps its age. The entity the
// counter belongs to is already synced; a telemetry failure is reported but
// never undoes that write.
func (d *DB) trackUsage(endpoint domain.Endpoint) {
	cached := storage.Get[domain.Allowance](d.store, storage.KeyAllowance)
	if !cached.IsSuccess {
		d.warn(fmt.Sprintf("usage for [%s] not recorded: %s", endpoint, flatten(cached.Errors)))
		return
	}

	allowance := cached.Data
	allowance.APIUtilizationBreakdown.Increment(endpoint)
	if updated := storage.Update(d.store, storage.KeyAllowance, allowance); !updated.IsSuccess {
		d.warn(fmt.Sprintf("usage for [%s] not recorded: %s", endpoint, flatten(updated.Errors)))
	}
}

func (d *DB) initFailure(stage string, errors []string) domain.ResultBase {
	err := fmt.Sprintf("initializing [%s] failed: %s", stage, flatten(errors))
	d.error(err)
	return domain.FailBase(err)
}

func (d *DB) warn(msg string) {
	d.logger.Warn(msg)
	if d.panel != nil {
		d.panel.Warning(msg)
	}
}

func (d *DB) error(msg string) {
	d.logger.Error(msg)
	if d.panel != nil {
		d.panel.Error(msg)
	}
}

func flatten(errors []string) string {
	return strings.Join(errors, "; ")
}
