package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	rankKey = "vn:leaderboard:xp"
	metaKey = "vn:leaderboard:meta"
)

// RedisProvider ranks users in a shared Redis sorted set scored by XP.
// Display names and levels live in a companion hash.
type RedisProvider struct {
	client *redis.Client
}

// NewRedisProvider connects to the given address and verifies the
// connection.
func NewRedisProvider(ctx context.Context, addr string) (*RedisProvider, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &RedisProvider{client: client}, nil
}

// NewRedisProviderFromClient wraps an existing client. The caller keeps
// ownership of the client's lifecycle.
func NewRedisProviderFromClient(client *redis.Client) *RedisProvider {
	return &RedisProvider{client: client}
}

func (p *RedisProvider) Close() error {
	return p.client.Close()
}

type entryMeta struct {
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
}

func (p *RedisProvider) Record(ctx context.Context, e Entry) error {
	meta, err := json.Marshal(entryMeta{DisplayName: e.DisplayName, Level: e.Level})
	if err != nil {
		return err
	}
	pipe := p.client.TxPipeline()
	pipe.ZAdd(ctx, rankKey, &redis.Z{Score: float64(e.XP), Member: e.UserID})
	pipe.HSet(ctx, metaKey, e.UserID, meta)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording standing for %s: %w", e.UserID, err)
	}
	return nil
}

func (p *RedisProvider) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}
	zs, err := p.client.ZRevRangeWithScores(ctx, rankKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading standings: %w", err)
	}

	entries := make([]Entry, 0, len(zs))
	for i, z := range zs {
		userID, _ := z.Member.(string)
		e := Entry{UserID: userID, XP: int(z.Score), Rank: i + 1}

		raw, err := p.client.HGet(ctx, metaKey, userID).Result()
		if err == nil {
			var meta entryMeta
			if json.Unmarshal([]byte(raw), &meta) == nil {
				e.DisplayName = meta.DisplayName
				e.Level = meta.Level
			}
		} else if err != redis.Nil {
			return nil, fmt.Errorf("reading metadata for %s: %w", userID, err)
		}
		if e.DisplayName == "" {
			e.DisplayName = userID
		}
		entries = append(entries, e)
	}
	return entries, nil
}
