package recurrence

import "time"

// EngineConfig holds configuration options for the expansion engine.
type EngineConfig struct {
	CacheEnabled bool
	CacheConfig  CacheConfig
}

// DefaultEngineConfig provides sensible defaults for production use.
var DefaultEngineConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig:  DefaultCacheConfig,
}

// HighPerformanceConfig is optimized for high-traffic scenarios.
var HighPerformanceConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             30 * time.Minute,
		MaxEntries:      5000,
		CleanupInterval: 10 * time.Minute,
	},
}

// LowMemoryConfig is optimized for memory-constrained environments.
var LowMemoryConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 2 * time.Minute,
	},
}

// DisabledCacheConfig turns off caching entirely; every expansion runs the
// pure generator.
var DisabledCacheConfig = EngineConfig{
	CacheEnabled: false,
}
