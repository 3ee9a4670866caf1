package ports

import (
	"context"
	"time"

	"SePushMonitor/internal/domain"
)

// PushAPI is the gateway to the EskomSePush API, one method per remote
// operation. Implementations attach the current credential themselves and
// normalize transport failures into Result errors; the mock and live
// implementations are swappable without changing any caller.
type PushAPI interface {
	GetStatus(ctx context.Context) domain.Result[domain.StatusResponse]
	GetAreaInformation(ctx context.Context, areaID string) domain.Result[domain.AreaInfoResponse]
	GetAreasNearby(ctx context.Context, lat, long float64) domain.Result[domain.AreasNearbyResponse]
	SearchArea(ctx context.Context, name string) domain.Result[domain.AreaSearchResponse]
	GetTopicsNearby(ctx context.Context, lat, long float64) domain.Result[domain.TopicsNearbyResponse]
	GetAllowance(ctx context.Context) domain.Result[domain.AllowanceResponse]
	ValidateAPIKey(ctx context.Context, apiKey string) domain.ResultBase
}

// Locator yields the current position, one-shot, no caching of its own.
type Locator interface {
	CurrentPosition(ctx context.Context) domain.Result[domain.Coordinates]
}

// Clock is the injectable time source used for cache expiry and schedule
// arithmetic; production is wall-clock, tests pin a fixed instant.
type Clock interface {
	Now() time.Time
}

// Notifier pushes stage alerts to an outbound channel, which owns the
// rendering of the alert.
type Notifier interface {
	Publish(ctx context.Context, alert domain.StageAlert) error
}

// Scheduler controls when the periodic sync job executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
