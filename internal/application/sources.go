package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eugenenazirov/messaging-config/internal/config"
	"github.com/eugenenazirov/messaging-config/internal/fixture"
	"github.com/eugenenazirov/messaging-config/internal/provider"
)

// fixtureOrdinal keeps the built-in fixture below every file source.
const fixtureOrdinal = 50

// RedisFactory opens the client used to snapshot a Redis hash source.
type RedisFactory func(cfg config.RedisConfig) RedisClient

// RedisClient is the part of the go-redis client the loader needs.
type RedisClient interface {
	provider.HashReader
	Close() error
}

func newRedisClient(cfg config.RedisConfig) RedisClient {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// BuildProvider loads every configured source once and layers them into a
// composite provider.
func BuildProvider(ctx context.Context, cfg config.SourcesConfig, logger *zap.Logger) (*provider.Config, error) {
	return buildProvider(ctx, cfg, logger, newRedisClient)
}

func buildProvider(ctx context.Context, cfg config.SourcesConfig, logger *zap.Logger, redisFactory RedisFactory) (*provider.Config, error) {
	var sources []provider.Source

	if cfg.Fixture {
		sources = append(sources, provider.NewMapSource("fixture", fixtureOrdinal, fixture.Store()))
	}

	for _, path := range cfg.PropertyFiles {
		src, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	if cfg.Redis.Enabled() {
		client := redisFactory(cfg.Redis)
		src, err := provider.LoadRedisHash(ctx, client, cfg.Redis.Key, cfg.Redis.Ordinal)
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn("failed to close redis client", zap.Error(closeErr))
		}
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	if cfg.Env {
		sources = append(sources, provider.NewEnvSource(os.Environ(), provider.DefaultEnvOrdinal))
	}

	for _, src := range sources {
		logger.Info("property source loaded",
			zap.String("source", src.Name()),
			zap.Int("ordinal", src.Ordinal()),
			zap.Int("properties", len(src.PropertyNames())),
		)
	}

	return provider.NewComposite(sources, provider.WithCoercion(coercion(cfg.Coercion))), nil
}

func loadFile(path string) (*provider.MapSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return provider.LoadYAMLFile(path, provider.DefaultFileOrdinal)
	case ".properties":
		return provider.LoadPropertiesFile(path, provider.DefaultFileOrdinal)
	default:
		return nil, fmt.Errorf("unsupported property file %s: expected .yaml, .yml or .properties", path)
	}
}

func coercion(name string) provider.Coercion {
	if name == config.CoercionIdentity {
		return provider.Identity
	}
	return provider.Parse
}
