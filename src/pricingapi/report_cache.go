package pricingapi

import (
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/european-pricer/src/eventmodels"
)

// ReportCache holds reports of seeded requests, which are reproducible and safe to replay.
type ReportCache struct {
	cache *cache.Cache
}

func NewReportCache() *ReportCache {
	return &ReportCache{
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (c *ReportCache) Get(key string) (*eventmodels.PricingReport, bool) {
	item, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	log.Tracef("%v: report cache hit", key)
	return item.(*eventmodels.PricingReport), true
}

func (c *ReportCache) Set(key string, report *eventmodels.PricingReport) {
	c.cache.Set(key, report, cache.DefaultExpiration)
	log.Tracef("%v: report stored in cache", key)
}

func (c *ReportCache) Len() int {
	return c.cache.ItemCount()
}
