// Package location provides position collaborators. A headless process has
// no browser geolocation to ask, so production pins coordinates from
// configuration; the port stays narrow enough for a device-backed
// implementation to slot in.
package location

import (
	"context"

	"SePushMonitor/internal/domain"
	"SePushMonitor/internal/ports"
)

// Static reports a fixed position.
type Static struct {
	position domain.Coordinates
}

var _ ports.Locator = (*Static)(nil)

// NewStatic pins the given coordinates.
func NewStatic(lat, long float64) *Static {
	return &Static{position: domain.Coordinates{Latitude: lat, Longitude: long}}
}

// CurrentPosition returns the pinned coordinates.
func (s *Static) CurrentPosition(ctx context.Context) domain.Result[domain.Coordinates] {
	if err := ctx.Err(); err != nil {
		return domain.Fail[domain.Coordinates](err.Error())
	}
	return domain.Ok(s.position)
}
