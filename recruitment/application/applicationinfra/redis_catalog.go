package applicationinfra

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/go-redis/redis/v8"
)

// RedisCatalog keeps the ordered job positions in a Redis list
type RedisCatalog struct {
	client   *redis.Client
	key      string
	defaults []string
}

// NewRedisCatalog creates a catalog that seeds key with defaults when it is empty
func NewRedisCatalog(client *redis.Client, key string, defaults []string) *RedisCatalog {
	return &RedisCatalog{
		client:   client,
		key:      key,
		defaults: defaults,
	}
}

var _ application.Catalog = (*RedisCatalog)(nil)

// JobPositions returns the list, seeding it on first use
func (c *RedisCatalog) JobPositions(ctx context.Context) ([]string, error) {
	positions, err := c.client.LRange(ctx, c.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read job positions: %w", err)
	}
	if len(positions) > 0 || len(c.defaults) == 0 {
		return positions, nil
	}

	if err := c.Replace(ctx, c.defaults); err != nil {
		return nil, err
	}
	return append([]string(nil), c.defaults...), nil
}

// Replace swaps the whole list atomically
func (c *RedisCatalog) Replace(ctx context.Context, positions []string) error {
	values := make([]any, len(positions))
	for i, p := range positions {
		values[i] = p
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key)
	if len(values) > 0 {
		pipe.RPush(ctx, c.key, values...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replace job positions: %w", err)
	}
	return nil
}
