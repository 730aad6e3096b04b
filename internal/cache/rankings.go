package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/scoring"
)

const (
	// DefaultTTL bounds how long a ranking is served from either tier.
	DefaultTTL = 10 * time.Minute

	redisTimeout = 200 * time.Millisecond
	keyPrefix    = "botlane:ranking"
)

// Rankings caches scoring results. Rankings are pure functions of the feed
// version and the selection, so entries never need invalidation; the TTL
// only bounds memory and Redis usage.
type Rankings struct {
	mem    *LRU[*scoring.Ranking]
	redis  RedisClient
	roster *champion.Roster
	ttl    time.Duration
	logger *slog.Logger
}

// RankingsDeps is the dependency list for the ranking cache.
type RankingsDeps struct {
	Size   int
	TTL    time.Duration
	Redis  RedisClient // nil: memory only
	Roster *champion.Roster
	Logger *slog.Logger
}

// NewRankings creates a ranking cache.
func NewRankings(deps *RankingsDeps) *Rankings {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Rankings{
		mem:    NewLRU[*scoring.Ranking](deps.Size, ttl),
		redis:  deps.Redis,
		roster: deps.Roster,
		ttl:    ttl,
		logger: logger,
	}
}

// GetOrCompute returns the cached ranking for key, computing and storing it
// on a miss. Redis failures degrade to computing.
func (c *Rankings) GetOrCompute(ctx context.Context, key string, compute func() *scoring.Ranking) *scoring.Ranking {
	if r, ok := c.mem.Get(key); ok {
		return r
	}

	if r := c.getFromRedis(ctx, key); r != nil {
		c.mem.Put(key, r)
		return r
	}

	r := compute()
	c.populate(ctx, key, r)
	return r
}

func (c *Rankings) getFromRedis(ctx context.Context, key string) *scoring.Ranking {
	if c.redis == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	cached, err := c.redis.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis get failed", "key", key, "error", err)
		}
		return nil
	}
	if cached == "" {
		return nil
	}

	var r scoring.Ranking
	if err := json.Unmarshal([]byte(cached), &r); err != nil {
		c.logger.Warn("discarding undecodable cached ranking", "key", key, "error", err)
		return nil
	}
	c.attachChampions(&r)
	return &r
}

// attachChampions restores the roster pointers that JSON drops.
func (c *Rankings) attachChampions(r *scoring.Ranking) {
	if c.roster == nil {
		return
	}
	for i := range r.Recommendations {
		if ch, ok := c.roster.ByID(r.Recommendations[i].ID); ok {
			r.Recommendations[i].Champion = ch
		}
	}
}

func (c *Rankings) populate(ctx context.Context, key string, r *scoring.Ranking) {
	c.mem.Put(key, r)
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(r)
	if err != nil {
		c.logger.Warn("encode ranking for redis", "key", key, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), redisTimeout)
	defer cancel()
	if err := c.redis.Set(ctx, key, string(data), c.ttl); err != nil {
		c.logger.Warn("redis set failed", "key", key, "error", err)
	}
}

// Key builds the cache key of a ranking.
func Key(role champion.Role, feedVersion string, sel scoring.Selection) string {
	var b strings.Builder
	b.WriteString(keyPrefix)
	b.WriteString(":" + string(role))
	b.WriteString(":" + feedVersion)

	if sel.Ally != nil {
		b.WriteString(":ally_" + sel.Ally.ID)
	}
	if sel.EnemySupport != nil {
		b.WriteString(":es_" + sel.EnemySupport.ID)
	}
	if sel.EnemyBottom != nil {
		b.WriteString(":eb_" + sel.EnemyBottom.ID)
	}
	if sel.Threat != champion.ThreatNone {
		b.WriteString(":threat_" + string(sel.Threat))
	}
	return b.String()
}
