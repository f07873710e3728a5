package blobstore

import (
	"fmt"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	redisclient "github.com/angelmondragon/storefront/pkg/redis"
)

// Open builds the Store selected by cfg.Backend. redis may be nil unless the
// redis backend is selected.
func Open(cfg config.StateConfig, redis *redisclient.Client) (Store, error) {
	backend, err := enums.ParseStateBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	switch backend {
	case enums.StateBackendFile:
		return NewFileStore(cfg.Dir)
	case enums.StateBackendRedis:
		if redis == nil {
			return nil, fmt.Errorf("redis state backend requires a redis client")
		}
		return NewRedisStore(redis, cfg.Namespace), nil
	default:
		return NewMemoryStore(), nil
	}
}
