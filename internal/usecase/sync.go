package usecase

import (
	"context"
	"fmt"

	"SePushMonitor/internal/domain"
	"SePushMonitor/internal/storage"
)

// syncStage is one named step of the full sync chain.
type syncStage struct {
	name string
	run  func(context.Context) domain.ResultBase
}

// FullSync refreshes every entity in a fixed order. The first failing stage
// stops the chain and the result names it; on success the result carries a
// completion message.
func (d *DB) FullSync(ctx context.Context) domain.Result[string] {
	stages := []syncStage{
		{"allowance", func(ctx context.Context) domain.ResultBase {
			return d.GetLatestOrDefaultAllowance(ctx).ResultBase
		}},
		{"saved-areas", func(context.Context) domain.ResultBase {
			return d.GetOrDefaultSavedAreas().ResultBase
		}},
		{"user-settings", func(context.Context) domain.ResultBase {
			return d.GetOrDefaultUserSettings().ResultBase
		}},
		{"registration-state", d.syncRegistrationState},
		{"status", func(ctx context.Context) domain.ResultBase {
			return d.GetStatus(ctx).ResultBase
		}},
		{"known-areas", d.syncKnownAreas},
		{"area-information", d.syncAreaInformation},
		{"areas-nearby", d.syncAreasNearby},
		{"topics-nearby", d.syncTopicsNearby},
	}

	for _, stage := range stages {
		if res := stage.run(ctx); !res.IsSuccess {
			err := fmt.Sprintf(
				"syncing [%s] failed, stopping all further attempts to sync remaining entities: %s",
				stage.name, flatten(res.Errors),
			)
			d.error(err)
			return domain.Fail[string](err)
		}
	}

	const msg = "sync completed successfully"
	d.logger.Info(msg)
	if d.panel != nil {
		d.panel.Success(msg)
	}
	d.pulse.Publish()
	return domain.Ok(msg)
}

// syncRegistrationState recomputes the registration predicate from the
// freshly synced settings. Recomputation itself cannot fail.
func (d *DB) syncRegistrationState(context.Context) domain.ResultBase {
	d.logger.Info("registration state", "registered", d.IsRegistered())
	return domain.OkBase()
}

// The remaining stages hydrate passive entities: load the cache entry if
// one survives, otherwise initialize an empty one. They never call remote.

func (d *DB) syncKnownAreas(context.Context) domain.ResultBase {
	return cacheLoadOrInit(d.store, storage.KeyAreaSearchResults, domain.AreaSearch{Areas: []domain.Area{}})
}

func (d *DB) syncAreaInformation(context.Context) domain.ResultBase {
	return cacheLoadOrInit(d.store, storage.KeyAreaInformation, []domain.AreaInfo{})
}

func (d *DB) syncAreasNearby(context.Context) domain.ResultBase {
	return cacheLoadOrInit(d.store, storage.KeyAreasNearby, domain.AreasNearby{Areas: []domain.NearbyArea{}})
}

func (d *DB) syncTopicsNearby(context.Context) domain.ResultBase {
	return cacheLoadOrInit(d.store, storage.KeyTopicsNearby, domain.TopicsNearby{Topics: []domain.Topic{}})
}

func cacheLoadOrInit[T any](store *storage.Store, key string, initial T) domain.ResultBase {
	if exists := store.Exists(key); exists.IsSuccess && exists.Data {
		if loaded := storage.Get[T](store, key); loaded.IsSuccess {
			return loaded.ResultBase
		}
	}
	return storage.Save(store, key, initial, true, 0)
}
