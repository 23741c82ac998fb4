package bootstrap

import (
	"context"

	"goeat-api/internal/infra/cache"
	"goeat-api/internal/pkg/config"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCache,
	),
)

// NewCache returns a nil store when no Redis address is configured; the
// query decorators treat a nil store as a pass-through.
func NewCache(lc fx.Lifecycle, cfg config.Config) (*cache.Store, error) {
	store, cleanup, err := cache.New(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return store, nil
}
