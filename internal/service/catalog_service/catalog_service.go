package catalog_service

import (
	"math/rand/v2"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

const fromCatalogService = "catalog-service"

// Start fills in defaults and builds the caches. It must be called once
// before the service is used. The catalog itself is loaded lazily.
func (c *CatalogService) Start() {
	if len(c.DatasetRoots) == 0 {
		panic("catalog service expects at least one dataset root")
	}

	c.logger = logrus.WithFields(logrus.Fields{
		"from": fromCatalogService,
	})

	if c.CacheTTL <= 0 {
		c.CacheTTL = defaultCacheTTL
	}
	if c.StageCacheSize <= 0 {
		c.StageCacheSize = defaultStageCacheSize
	}

	stages, err := lru.New[string, *StageTierIndex](c.StageCacheSize)
	if err != nil {
		panic(err)
	}
	c.stages = stages
	c.cache = newCatalogCache(c.CacheTTL, c.buildCatalog)
	if c.intN == nil {
		c.intN = rand.IntN
	}

	c.logger.Infof(
		"catalog service started, roots %v, ttl %v, stage cache size %d",
		c.DatasetRoots,
		c.CacheTTL,
		c.StageCacheSize,
	)
}
