// Package region provides the durable key-value regions the local store keeps
// its document in.
package region

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"guidemarket/internal/config"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("region: key not found")

type Region interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the region selected by cfg.Backend.
func Open(ctx context.Context, cfg config.LocalConfig, log zerolog.Logger) (Region, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendSQLite, "":
		return OpenSQLite(cfg.DSN, log)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.BackendMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown local store backend %q", cfg.Backend)
	}
}
