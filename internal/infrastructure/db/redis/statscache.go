package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/alertaclimatica/news-api/internal/api/metrics"
	"github.com/alertaclimatica/news-api/internal/core/ports"
)

const (
	statsKey = "stats:noticias"
	statsTTL = time.Minute
)

// StatsCache keeps the aggregation result of the stats endpoint in Redis for
// a short TTL. Cache failures fall through to the repository; the cache is
// never authoritative.
type StatsCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client, log zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, log: log}
}

// Get returns the cached stats and whether they were present and decodable.
func (c *StatsCache) Get(ctx context.Context) (*ports.NoticiaStats, bool) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("stats cache read failed")
		}
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var stats ports.NoticiaStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return &stats, true
}

// Set stores stats under the TTL.
func (c *StatsCache) Set(ctx context.Context, stats *ports.NoticiaStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey, raw, statsTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache write failed")
	}
}
