package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Presence tracks which users are currently online. Entries expire on
// their own, so a client that vanishes simply ages out. All methods are
// nil-safe: without Redis the app runs with online counts reported as zero.
type Presence struct {
	rdb *redis.Client
	ttl time.Duration
}

const presenceTTL = 5 * time.Minute

func NewPresence(redisURL string) *Presence {
	if redisURL == "" {
		log.Println("⚠️  REDIS_URL not set, presence tracking disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "",
		DB:       0,
	})

	log.Println("🔧 Redis presence initialized with address:", redisURL)
	return &Presence{rdb: rdb, ttl: presenceTTL}
}

func (p *Presence) MarkOnline(ctx context.Context, userID string) {
	if p == nil {
		return
	}
	if err := p.rdb.Set(ctx, "presence:"+userID, 1, p.ttl).Err(); err != nil {
		log.Printf("[Presence] Failed to mark %s online: %v", userID, err)
	}
}

func (p *Presence) MarkOffline(ctx context.Context, userID string) {
	if p == nil {
		return
	}
	if err := p.rdb.Del(ctx, "presence:"+userID).Err(); err != nil {
		log.Printf("[Presence] Failed to mark %s offline: %v", userID, err)
	}
}

// OnlineCount reports how many of the given users are currently online.
func (p *Presence) OnlineCount(ctx context.Context, userIDs []string) int {
	if p == nil || len(userIDs) == 0 {
		return 0
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = "presence:" + id
	}

	n, err := p.rdb.Exists(ctx, keys...).Result()
	if err != nil {
		log.Printf("[Presence] Online count lookup failed: %v", err)
		return 0
	}
	return int(n)
}
