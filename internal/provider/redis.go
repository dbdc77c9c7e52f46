package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/eugenenazirov/messaging-config/internal/property"
)

// HashReader is the subset of the go-redis client used to snapshot a hash.
type HashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// LoadRedisHash reads every field of the hash at key once. Later changes to
// the hash are not observed.
func LoadRedisHash(ctx context.Context, client HashReader, key string, ordinal int) (*MapSource, error) {
	if key == "" {
		return nil, errors.New("redis hash key must not be empty")
	}
	values, err := client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("read redis hash %s: %w", key, err)
	}
	store, err := property.FromMap(values)
	if err != nil {
		return nil, fmt.Errorf("build store from redis hash %s: %w", key, err)
	}
	return NewMapSource("redis:"+key, ordinal, store), nil
}
