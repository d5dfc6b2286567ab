package recurrence

import "time"

// Engine provides rule expansion with an optional result cache. The pure
// entry points (ExpandDates, ValidateRule) stay available for callers that
// want no state at all; the Engine is for callers expanding the same rules
// repeatedly, e.g. a form layer previewing counts before submitting.
type Engine struct {
	cache  *ExpansionCache
	config EngineConfig
}

// NewEngine creates an engine with the default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig)
}

// NewEngineWithConfig creates an engine with custom configuration.
func NewEngineWithConfig(config EngineConfig) *Engine {
	var cache *ExpansionCache
	if config.CacheEnabled {
		cache = NewExpansionCache(config.CacheConfig)
	}
	return &Engine{
		cache:  cache,
		config: config,
	}
}

// ExpandDates expands the rule, serving repeated expansions of the same
// rule from the cache when one is configured. The returned slice is always
// a fresh copy; mutating it cannot corrupt cached results.
func (e *Engine) ExpandDates(rule Rule) []time.Time {
	if e == nil || e.cache == nil {
		return ExpandDates(rule)
	}

	if dates, ok := e.cache.Get(rule); ok {
		return dates
	}

	dates := ExpandDates(rule)
	e.cache.Set(rule, dates)

	// Serve the caller a copy for the same reason Get does.
	out := make([]time.Time, len(dates))
	copy(out, dates)
	return out
}

// Close releases the engine's cache resources, if any.
func (e *Engine) Close() {
	if e != nil && e.cache != nil {
		e.cache.Close()
	}
}

// CacheStats returns statistics for the engine's cache, or zero stats when
// caching is disabled.
func (e *Engine) CacheStats() CacheStats {
	if e == nil || e.cache == nil {
		return CacheStats{}
	}
	return e.cache.Stats()
}
