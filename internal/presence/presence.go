package presence

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	presenceKeyPrefix = "presence:"
	onlineSetKey      = "online_users"
)

// Tracker caches per-user presence in Redis with a TTL so stale entries
// fall out on their own. A nil client makes every call a no-op; the durable
// presence columns in the store remain the source of truth.
type Tracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTracker builds a Tracker. addr may be empty to disable the cache.
func NewTracker(addr string, ttl time.Duration) *Tracker {
	if addr == "" {
		log.Printf("presence cache disabled: empty redis addr")
		return &Tracker{ttl: ttl}
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	log.Printf("presence cache connected addr=%s ttl=%s", addr, ttl)
	return &Tracker{client: client, ttl: ttl}
}

// Update records the user's presence in the cache.
func (t *Tracker) Update(ctx context.Context, userID string, online bool) error {
	if t.client == nil {
		return nil
	}
	pipe := t.client.Pipeline()
	if online {
		pipe.Set(ctx, presenceKeyPrefix+userID, time.Now().UTC().Format(time.RFC3339), t.ttl)
		pipe.SAdd(ctx, onlineSetKey, userID)
		pipe.Expire(ctx, onlineSetKey, t.ttl*2)
	} else {
		pipe.Del(ctx, presenceKeyPrefix+userID)
		pipe.SRem(ctx, onlineSetKey, userID)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Online reports whether the user has a live presence entry.
func (t *Tracker) Online(ctx context.Context, userID string) (bool, error) {
	if t.client == nil {
		return false, nil
	}
	n, err := t.client.Exists(ctx, presenceKeyPrefix+userID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// OnlineUsers returns the ids currently in the online set, dropping ones
// whose presence key already expired.
func (t *Tracker) OnlineUsers(ctx context.Context) ([]string, error) {
	if t.client == nil {
		return nil, nil
	}
	ids, err := t.client.SMembers(ctx, onlineSetKey).Result()
	if err != nil {
		return nil, err
	}
	var online []string
	for _, id := range ids {
		n, err := t.client.Exists(ctx, presenceKeyPrefix+id).Result()
		if err != nil {
			return nil, err
		}
		if n > 0 {
			online = append(online, id)
		}
	}
	return online, nil
}

// Close releases the Redis connection.
func (t *Tracker) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}
