package cache

import (
	"sync"
	"time"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
)

const DefaultSpotListTTL = 24 * time.Hour

// SpotCache holds the full spot list in memory for the life of the process
type SpotCache struct {
	spots       []models.Spot
	lastUpdated time.Time
	ttl         time.Duration
	clock       clock
	mu          sync.RWMutex
}

func NewSpotCache(ttl time.Duration) *SpotCache {
	if ttl <= 0 {
		ttl = DefaultSpotListTTL
	}
	return &SpotCache{
		spots: make([]models.Spot, 0),
		ttl:   ttl,
		clock: systemClock{},
	}
}

// GetSpots returns the cached list, or nil once it is older than the TTL
func (c *SpotCache) GetSpots() []models.Spot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isExpired() {
		return nil
	}
	return c.spots
}

func (c *SpotCache) SetSpots(spots []models.Spot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.spots = spots
	c.lastUpdated = c.clock.Now()
}

func (c *SpotCache) isExpired() bool {
	return c.lastUpdated.IsZero() || c.clock.Now().Sub(c.lastUpdated) > c.ttl
}
