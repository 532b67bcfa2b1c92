package discovery

import (
	"context"
	"slices"
	"time"

	ttlworker "github.com/FloatTech/ttl"
)

const snapshotKey = "devices"

type snapshot struct {
	devices []Device
	takenAt time.Time
}

// CachedDirectory keeps the last device list for a short time so that a menu
// opened repeatedly does not run tailscale every time. Refresh always rebuilds.
type CachedDirectory struct {
	source Refresher
	ttl    time.Duration
	cache  *ttlworker.Cache[string, *snapshot]
	now    func() time.Time
}

// NewCachedDirectory wraps source. A ttl of zero disables caching.
func NewCachedDirectory(source Refresher, ttl time.Duration) *CachedDirectory {
	c := &CachedDirectory{source: source, ttl: ttl, now: time.Now}
	if ttl > 0 {
		c.cache = ttlworker.NewCache[string, *snapshot](ttl)
	}
	return c
}

// Devices returns the cached list if it is younger than the TTL, and refreshes otherwise.
func (c *CachedDirectory) Devices(ctx context.Context) ([]Device, error) {
	if c.cache != nil {
		if snap := c.cache.Get(snapshotKey); snap != nil && c.now().Sub(snap.takenAt) < c.ttl {
			return slices.Clone(snap.devices), nil
		}
	}
	return c.Refresh(ctx)
}

// Refresh rebuilds the list and replaces the cached snapshot wholesale.
func (c *CachedDirectory) Refresh(ctx context.Context) ([]Device, error) {
	devices, err := c.source.Refresh(ctx)
	if err != nil {
		if c.cache != nil {
			c.cache.Delete(snapshotKey)
		}
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(snapshotKey, &snapshot{devices: slices.Clone(devices), takenAt: c.now()})
	}
	return devices, nil
}
