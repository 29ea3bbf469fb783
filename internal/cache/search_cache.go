package cache

import (
	"time"

	"plotpirate/server/internal/models"

	"github.com/karlseguin/ccache/v3"
	"github.com/sirupsen/logrus"
)

// SearchCache memoizes search results by normalized request key. Results
// are shared between callers and must be treated as read-only. The dataset
// never changes at runtime, so entries only leave through TTL or eviction.
type SearchCache struct {
	local  *ccache.Cache[models.SearchResult]
	ttl    time.Duration
	logger *logrus.Logger
}

// NewSearchCache creates a cache holding up to maxEntries results for ttl.
// A maxEntries or ttl of zero or less disables caching: Fetch always computes.
func NewSearchCache(maxEntries int64, ttl time.Duration, logger *logrus.Logger) *SearchCache {
	if logger == nil {
		logger = logrus.New()
	}

	c := &SearchCache{ttl: ttl, logger: logger}
	if maxEntries > 0 && ttl > 0 {
		c.local = ccache.New(ccache.Configure[models.SearchResult]().MaxSize(maxEntries))
		logger.WithFields(logrus.Fields{
			"max_entries": maxEntries,
			"ttl":         ttl.String(),
		}).Info("Search cache initialized")
	}
	return c
}

// Fetch returns the cached result for key, computing and storing it on a miss.
func (c *SearchCache) Fetch(key string, compute func() models.SearchResult) models.SearchResult {
	if c.local == nil {
		return compute()
	}

	if item := c.local.Get(key); item != nil && !item.Expired() {
		c.logger.WithField("key", key).Debug("Search cache hit")
		return item.Value()
	}

	result := compute()
	c.local.Set(key, result, c.ttl)
	c.logger.WithField("key", key).Debug("Search cache miss")
	return result
}

// Len returns the number of cached results.
func (c *SearchCache) Len() int {
	if c.local == nil {
		return 0
	}
	return c.local.ItemCount()
}

func (c *SearchCache) Enabled() bool {
	return c.local != nil
}

// Stop releases the cache's background worker.
func (c *SearchCache) Stop() {
	if c.local != nil {
		c.local.Stop()
	}
}
