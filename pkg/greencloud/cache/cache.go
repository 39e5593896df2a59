// Package cache provides thread-safe caching of carbon intensity data
// with TTL based expiry.
package cache

import (
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/api"
)

// Cache provides thread-safe caching of carbon intensity data with TTL.
// Entries are keyed by Electricity Maps zone so regions sharing a grid
// share a single cached reading.
type Cache struct {
	data    map[string]*cacheEntry
	mutex   sync.RWMutex
	ttl     time.Duration
	maxAge  time.Duration
	stopCh  chan struct{}
	metrics *metrics
}

type cacheEntry struct {
	data      *api.CarbonIntensityData
	timestamp time.Time
	hits      int64
}

type metrics struct {
	hits   int64
	misses int64
	mutex  sync.RWMutex
}

// New creates a new cache instance
func New(ttl time.Duration, maxAge time.Duration) *Cache {
	// Ensure TTL and maxAge are positive
	if ttl <= 0 {
		ttl = time.Minute // Default to 1 minute if not set
	}
	if maxAge <= 0 {
		maxAge = time.Hour // Default to 1 hour if not set
	}

	c := &Cache{
		data: make(map[string]*cacheEntry),
		// For cache freshness purposes at get time.
		ttl: ttl,
		// Age to clean-up unaccessed items.
		maxAge:  maxAge,
		stopCh:  make(chan struct{}),
		metrics: &metrics{},
	}

	// Start cleanup goroutine
	go c.cleanup()

	return c
}

// Get retrieves data from cache if still fresh
func (c *Cache) Get(zone string) (*api.CarbonIntensityData, bool) {
	c.mutex.RLock()
	entry, exists := c.data[zone]
	c.mutex.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	age := time.Since(entry.timestamp)
	if age > c.ttl {
		c.recordMiss()
		return nil, false
	}

	// Update metrics under write lock
	c.mutex.Lock()
	entry.hits++
	c.recordHit()
	c.mutex.Unlock()

	return entry.data, true
}

// Set stores data in cache. Measured readings are preferred over estimates:
// an estimated reading does not replace a recent measured one, so values do
// not flutter when the API alternates between the two.
func (c *Cache) Set(zone string, data *api.CarbonIntensityData) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if existing, exists := c.data[zone]; exists {
		if data.IsEstimated && !existing.data.IsEstimated {
			dataAge := data.Timestamp.Sub(existing.data.Timestamp)
			if dataAge < time.Hour {
				klog.V(3).InfoS("Skipping estimated data update - already have measured data",
					"zone", zone,
					"existingTimestamp", existing.data.Timestamp,
					"newTimestamp", data.Timestamp,
					"dataAge", dataAge)
				return
			}
		}
	}

	c.data[zone] = &cacheEntry{
		data:      data,
		timestamp: time.Now(),
		hits:      0,
	}

	klog.V(4).InfoS("Cached carbon intensity data",
		"zone", zone,
		"carbonIntensity", data.CarbonIntensity,
		"timestamp", data.Timestamp,
		"isEstimated", data.IsEstimated)
}

// GetMetrics returns cache performance metrics
func (c *Cache) GetMetrics() (hits, misses int64) {
	c.metrics.mutex.RLock()
	defer c.metrics.mutex.RUnlock()
	return c.metrics.hits, c.metrics.misses
}

func (c *Cache) recordHit() {
	c.metrics.mutex.Lock()
	c.metrics.hits++
	c.metrics.mutex.Unlock()
}

func (c *Cache) recordMiss() {
	c.metrics.mutex.Lock()
	c.metrics.misses++
	c.metrics.mutex.Unlock()
}

// ensurePositiveDuration makes sure a duration is positive
func ensurePositiveDuration(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Minute // Default to 1 minute if duration is not positive
	}
	return d
}

// cleanup periodically removes expired entries
func (c *Cache) cleanup() {
	ticker := time.NewTicker(ensurePositiveDuration(c.ttl))
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for zone, entry := range c.data {
		age := now.Sub(entry.timestamp)
		if age > c.maxAge {
			delete(c.data, zone)
			klog.V(4).InfoS("Removed expired cache entry",
				"zone", zone,
				"age", age.String(),
				"hits", entry.hits)
		}
	}
}

// Close stops the cleanup goroutine
func (c *Cache) Close() {
	close(c.stopCh)
}

// Clear removes all entries from the cache
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*cacheEntry)
	klog.V(4).Info("Cleared cache")
}

// Size returns the number of entries in the cache
func (c *Cache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// GetZones returns a list of cached zones
func (c *Cache) GetZones() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	zones := make([]string, 0, len(c.data))
	for zone := range c.data {
		zones = append(zones, zone)
	}
	return zones
}
