package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shocktheblock/atom/internal/models"
)

const (
	// LeaderboardKey holds the JSON-encoded top scores.
	LeaderboardKey = "leaderboard:top"
	// usedReceiptPrefix marks receipt IDs that already backed a stored score.
	usedReceiptPrefix = "receipt:used:"
	// EventsChannel carries a models.ScoreEvent for every stored score.
	EventsChannel = "score_events"
)

// Cache keeps the leaderboard in Redis and announces new scores. A Cache
// with no client is valid and does nothing, so the API keeps working
// without Redis.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get returns the cached leaderboard. ok is false on a miss or any error.
func (c *Cache) Get(ctx context.Context) (rows []models.PlayerScore, ok bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, LeaderboardKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] leaderboard read failed: %v", err)
		}
		return nil, false
	}
	if err := json.Unmarshal(raw, &rows); err != nil {
		log.Printf("[CACHE] leaderboard payload corrupt: %v", err)
		return nil, false
	}
	return rows, true
}

// Set stores the leaderboard with the cache TTL.
func (c *Cache) Set(ctx context.Context, rows []models.PlayerScore) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	if err := c.rdb.Set(ctx, LeaderboardKey, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache leaderboard: %w", err)
	}
	return nil
}

// Invalidate drops the cached leaderboard.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, LeaderboardKey).Err(); err != nil {
		log.Printf("[CACHE] leaderboard invalidate failed: %v", err)
	}
}

// Publish announces a stored score on EventsChannel.
func (c *Cache) Publish(ctx context.Context, row models.PlayerScore) {
	if c == nil || c.rdb == nil {
		return
	}
	b, _ := json.Marshal(models.ScoreEvent{Type: "score_saved", Score: row})
	if n, err := c.rdb.Publish(ctx, EventsChannel, b).Result(); err != nil {
		log.Printf("[CACHE] publish score failed: player=%s err=%v", row.PlayerName, err)
	} else {
		log.Printf("[CACHE] published score: player=%s score=%d subscribers=%d", row.PlayerName, row.Score, n)
	}
}

// ClaimReceipt records a receipt ID as spent until ttl passes. It reports
// false when the ID was already claimed. Without Redis every claim succeeds.
func (c *Cache) ClaimReceipt(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if c == nil || c.rdb == nil {
		return true, nil
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	ok, err := c.rdb.SetNX(ctx, usedReceiptPrefix+id, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim receipt %s: %w", id, err)
	}
	return ok, nil
}

// ReleaseReceipt forgets a claim, so the receipt can be submitted again.
func (c *Cache) ReleaseReceipt(ctx context.Context, id string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, usedReceiptPrefix+id).Err(); err != nil {
		log.Printf("[CACHE] receipt release failed: id=%s err=%v", id, err)
	}
}
