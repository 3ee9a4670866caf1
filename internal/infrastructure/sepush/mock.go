package sepush

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"SePushMonitor/internal/domain"
	"SePushMonitor/internal/ports"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// Mock serves embedded fixture payloads for offline and demo use. It
// implements the same contract as Client and can be swapped in without
// changing any caller. An optional latency simulates network delay.
type Mock struct {
	latency time.Duration
	logger  *slog.Logger
}

var _ ports.PushAPI = (*Mock)(nil)

// NewMock builds the fixture-backed gateway.
func NewMock(latency time.Duration, logger *slog.Logger) *Mock {
	return &Mock{latency: latency, logger: logger}
}

// GetStatus returns the fixture status payload.
func (m *Mock) GetStatus(ctx context.Context) domain.Result[domain.StatusResponse] {
	return fixture[domain.StatusResponse](m, ctx, "fixtures/status.json")
}

// GetAreaInformation returns the fixture schedule payload.
func (m *Mock) GetAreaInformation(ctx context.Context, areaID string) domain.Result[domain.AreaInfoResponse] {
	m.logger.Debug("mock request", "op", "getAreaInformation", "areaId", areaID)
	return fixture[domain.AreaInfoResponse](m, ctx, "fixtures/area_info.json")
}

// GetAreasNearby returns the fixture nearby payload.
func (m *Mock) GetAreasNearby(ctx context.Context, lat, long float64) domain.Result[domain.AreasNearbyResponse] {
	m.logger.Debug("mock request", "op", "getAreasNearby", "lat", lat, "long", long)
	return fixture[domain.AreasNearbyResponse](m, ctx, "fixtures/areas_nearby.json")
}

// SearchArea returns the fixture search payload.
func (m *Mock) SearchArea(ctx context.Context, name string) domain.Result[domain.AreaSearchResponse] {
	m.logger.Debug("mock request", "op", "searchArea", "name", name)
	return fixture[domain.AreaSearchResponse](m, ctx, "fixtures/area_search.json")
}

// GetTopicsNearby returns the fixture topic payload.
func (m *Mock) GetTopicsNearby(ctx context.Context, lat, long float64) domain.Result[domain.TopicsNearbyResponse] {
	return fixture[domain.TopicsNearbyResponse](m, ctx, "fixtures/topics_nearby.json")
}

// GetAllowance returns the fixture allowance payload.
func (m *Mock) GetAllowance(ctx context.Context) domain.Result[domain.AllowanceResponse] {
	return fixture[domain.AllowanceResponse](m, ctx, "fixtures/allowance.json")
}

// ValidateAPIKey accepts any non-empty key.
func (m *Mock) ValidateAPIKey(ctx context.Context, apiKey string) domain.ResultBase {
	if err := m.wait(ctx); err != nil {
		return domain.FailBase(err.Error())
	}
	if apiKey == "" {
		return domain.FailBase("API key: empty key rejected")
	}
	return domain.OkBase()
}

func fixture[T any](m *Mock, ctx context.Context, name string) domain.Result[T] {
	if err := m.wait(ctx); err != nil {
		return domain.Fail[T](err.Error())
	}

	raw, err := fixturesFS.ReadFile(name)
	if err != nil {
		return domain.Fail[T](fmt.Sprintf("reading fixture %s: %v", name, err))
	}

	var payload T
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Fail[T](fmt.Sprintf("parsing fixture %s: %v", name, err))
	}
	return domain.Ok(payload)
}

func (m *Mock) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
