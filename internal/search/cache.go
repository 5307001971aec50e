package search

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"playdex/searchservice/internal/domain"
	"playdex/searchservice/internal/metrics"
)

const (
	defaultCacheTTL        = 15 * time.Minute
	defaultCacheMaxEntries = 256
	sweepInterval          = 5 * time.Minute
)

// CacheKey canonicalizes a provider filter so equivalent filters share one
// cache entry. Free text and sort order are excluded: both apply after the
// fetch, so they do not change what the provider returns.
func CacheKey(filter domain.ProviderFilter) string {
	parts := []string{
		"p=" + filter.PlayerID,
		"t=" + filter.TeamID,
		"o=" + filter.OpponentTeamID,
		"s=" + filter.Season,
		"st=" + string(filter.SeasonType),
		"cm=" + string(filter.ContextMeasure),
		"m=" + filter.Month,
		"ct=" + filter.ClutchTime,
		"sc=" + string(filter.ScoreSpecifier),
	}
	if len(filter.ShotSpecifiers) > 0 {
		specs := append([]string(nil), filter.ShotSpecifiers...)
		sort.Strings(specs)
		parts = append(parts, "sp="+strings.Join(specs, ","))
	}
	if filter.DateFrom != nil {
		parts = append(parts, "df="+filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		parts = append(parts, "dt="+filter.DateTo.Format("2006-01-02"))
	}
	return strings.ToLower(strings.Join(parts, "|"))
}

type cachedBatch struct {
	clips     []domain.Clip
	updatedAt time.Time
	expiresAt time.Time
}

// PlayCache keeps fetched play batches in memory with TTL expiry, backed by
// an optional Redis tier shared across instances. Expired entries are
// dropped lazily on read and by a periodic sweep.
type PlayCache struct {
	mu         sync.Mutex
	entries    map[string]*cachedBatch
	ttl        time.Duration
	maxEntries int
	redis      *RedisPlayCache
	now        func() time.Time
}

type PlayCacheConfig struct {
	TTL        time.Duration
	MaxEntries int
	Redis      *RedisPlayCache
}

func NewPlayCache(cfg PlayCacheConfig) *PlayCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultCacheMaxEntries
	}
	return &PlayCache{
		entries:    make(map[string]*cachedBatch),
		ttl:        ttl,
		maxEntries: maxEntries,
		redis:      cfg.Redis,
		now:        time.Now,
	}
}

func (c *PlayCache) Get(ctx context.Context, key string) ([]domain.Clip, bool) {
	now := c.now()

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && now.Before(entry.expiresAt) {
		clips := cloneClips(entry.clips)
		c.mu.Unlock()
		metrics.CacheHitsTotal.Inc()
		return clips, true
	}
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	if c.redis != nil {
		clips, found, err := c.redis.Get(ctx, key)
		if err == nil && found {
			metrics.CacheHitsTotal.Inc()
			// Promote so later reads skip the network hop.
			c.storeMemory(key, clips, now)
			return clips, true
		}
	}

	metrics.CacheMissesTotal.Inc()
	return nil, false
}

func (c *PlayCache) Set(ctx context.Context, key string, clips []domain.Clip) {
	now := c.now()
	c.storeMemory(key, clips, now)
	if c.redis != nil {
		_ = c.redis.Set(ctx, key, clips, c.ttl)
	}
}

func (c *PlayCache) storeMemory(key string, clips []domain.Clip, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cachedBatch{
		clips:     cloneClips(clips),
		updatedAt: now,
		expiresAt: now.Add(c.ttl),
	}
	c.trimLocked(now)
}

// trimLocked drops expired entries first, then the oldest survivors until
// the map fits the budget.
func (c *PlayCache) trimLocked(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) <= c.maxEntries {
		return
	}

	type aged struct {
		key       string
		updatedAt time.Time
	}
	items := make([]aged, 0, len(c.entries))
	for key, entry := range c.entries {
		items = append(items, aged{key: key, updatedAt: entry.updatedAt})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].updatedAt.Before(items[j].updatedAt) })
	for _, item := range items[:len(c.entries)-c.maxEntries] {
		delete(c.entries, item.key)
	}
}

// RunSweeper evicts expired entries until the context is cancelled.
func (c *PlayCache) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := c.now()
			c.mu.Lock()
			c.trimLocked(now)
			c.mu.Unlock()
		}
	}
}

func (c *PlayCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cloneClips(clips []domain.Clip) []domain.Clip {
	out := make([]domain.Clip, len(clips))
	copy(out, clips)
	for i := range out {
		if out[i].Video != nil {
			video := *out[i].Video
			out[i].Video = &video
		}
	}
	return out
}
