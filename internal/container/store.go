package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

const schemaTimeout = 10 * time.Second

// RedisClient is the shared Redis connection, closed on injector shutdown.
type RedisClient struct {
	redis.UniversalClient
}

// Shutdown closes the connection pool.
func (c *RedisClient) Shutdown() error {
	return c.Close()
}

// RedisPackage provides *RedisClient. The client is created lazily, so no
// connection is made unless the redis store or events need it.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*RedisClient, error) {
		opts := do.MustInvoke[*Options](i)

		return &RedisClient{
			UniversalClient: redis.NewClient(&redis.Options{Addr: opts.RedisAddr}),
		}, nil
	})
}

// StorePackage provides the shortener.Repository selected by the store option.
// The schema is ensured before the repository is handed out.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		repo, err := openStore(i, opts)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()

		if err := repo.EnsureSchema(ctx); err != nil {
			if s, ok := repo.(do.Shutdownable); ok {
				_ = s.Shutdown()
			}

			return nil, err
		}

		logger.Info("store ready", zap.String("store", opts.Store))

		return repo, nil
	})
}

func openStore(i *do.Injector, opts *Options) (shortener.Repository, error) {
	switch opts.Store {
	case StoreSQLite:
		return store.OpenSQLite(opts.Database)
	case StorePostgres:
		pool, err := pgxpool.New(context.Background(), opts.Database)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}

		return store.NewPostgresStore(pool), nil
	case StoreRedis:
		client := do.MustInvoke[*RedisClient](i)

		return store.NewRedisStore(client.UniversalClient), nil
	case StoreMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", opts.Store)
	}
}
