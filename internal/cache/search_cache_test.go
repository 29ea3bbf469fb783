package cache

import (
	"testing"
	"time"

	"plotpirate/server/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSearchCache_ComputesOncePerKey(t *testing.T) {
	c := NewSearchCache(10, time.Minute, logrus.New())
	defer c.Stop()

	calls := 0
	compute := func() models.SearchResult {
		calls++
		return models.SearchResult{TotalListings: calls, Listings: []models.Listing{}}
	}

	first := c.Fetch("list:type=Villa", compute)
	second := c.Fetch("list:type=Villa", compute)
	other := c.Fetch("list:type=Plot", compute)

	assert.Equal(t, 2, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, other.TotalListings)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Enabled())
}

func TestSearchCache_Disabled(t *testing.T) {
	tests := []struct {
		name       string
		maxEntries int64
		ttl        time.Duration
	}{
		{"no entries", 0, time.Minute},
		{"zero ttl", 10, 0},
		{"negative ttl", 10, -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSearchCache(tt.maxEntries, tt.ttl, nil)
			defer c.Stop()

			calls := 0
			compute := func() models.SearchResult {
				calls++
				return models.SearchResult{}
			}

			c.Fetch("key", compute)
			c.Fetch("key", compute)

			assert.Equal(t, 2, calls)
			assert.Equal(t, 0, c.Len())
			assert.False(t, c.Enabled())
		})
	}
}

func TestSearchCache_ExpiredEntriesRecomputed(t *testing.T) {
	c := NewSearchCache(10, time.Millisecond, nil)
	defer c.Stop()

	calls := 0
	compute := func() models.SearchResult {
		calls++
		return models.SearchResult{}
	}

	c.Fetch("key", compute)
	time.Sleep(5 * time.Millisecond)
	c.Fetch("key", compute)

	assert.Equal(t, 2, calls)
}
