// Package freq builds word frequency lists from annotated corpora. Counts
// live behind the Counter interface so a run can accumulate into redis
// across corpus shards or into memory for one-shot jobs.
package freq

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"

	"github.com/codemix-nlp/codemix/config"
)

// Entry is one ranked word with its occurrence count.
type Entry struct {
	Word  string `json:"word" db:"word"`
	Count int64  `json:"count" db:"count"`
}

// Counter accumulates per-list word counts. Lists are named by language
// code ("en", "es").
type Counter interface {
	Add(ctx context.Context, list, word string, n int64) error
	Top(ctx context.Context, list string, n int64) ([]Entry, error)
	Len(ctx context.Context, list string) (int64, error)
	Reset(ctx context.Context, list string) error
	Close() error
}

func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       0,
	})
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("error pinging the redis : %w", err)
	}
	return client, nil
}

const listKeyPrefix = "freq:"

type redisCounter struct {
	client *redis.Client
}

// NewRedisCounter keeps counts in redis sorted sets keyed freq:<list>,
// so shards of a corpus can be accumulated in separate runs.
func NewRedisCounter(client *redis.Client) Counter {
	return &redisCounter{client: client}
}

func (c *redisCounter) Add(ctx context.Context, list, word string, n int64) error {
	if err := c.client.ZIncrBy(ctx, listKeyPrefix+list, float64(n), word).Err(); err != nil {
		return fmt.Errorf("failed to increment word count: %w", err)
	}
	return nil
}

func (c *redisCounter) Top(ctx context.Context, list string, n int64) ([]Entry, error) {
	if n <= 0 {
		return nil, errors.New("invalid count")
	}
	pairs, err := c.client.ZRevRangeWithScores(ctx, listKeyPrefix+list, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read word counts: %w", err)
	}
	entries := make([]Entry, 0, len(pairs))
	for _, p := range pairs {
		word, ok := p.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Word: word, Count: int64(math.Round(p.Score))})
	}
	return entries, nil
}

func (c *redisCounter) Len(ctx context.Context, list string) (int64, error) {
	size, err := c.client.ZCard(ctx, listKeyPrefix+list).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to size word list: %w", err)
	}
	return size, nil
}

func (c *redisCounter) Reset(ctx context.Context, list string) error {
	if err := c.client.Del(ctx, listKeyPrefix+list).Err(); err != nil {
		return fmt.Errorf("failed to reset word list: %w", err)
	}
	return nil
}

func (c *redisCounter) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}
