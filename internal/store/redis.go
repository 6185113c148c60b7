package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// insertScript writes both keys only when neither the code nor the URL is taken.
// Returns 0 on success, 1 on a code conflict and 2 on a URL conflict.
var insertScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 1
end
if redis.call("HEXISTS", KEYS[2], ARGV[2]) == 1 then
	return 2
end
redis.call("HSET", KEYS[1], "code", ARGV[1], "original_url", ARGV[2], "created_at", ARGV[3])
redis.call("HSET", KEYS[2], ARGV[2], ARGV[1])
return 0
`)

// RedisStore is a Redis implementation of shortener.Repository.
type RedisStore struct {
	client redis.UniversalClient
	prefix string // "mapping:" for code->mapping (hash per code)
	urlKey string // "mapping_urls" for url->code (single hash)
}

// NewRedisStore creates a new Redis-backed mapping store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "mapping:",
		urlKey: "mapping_urls",
	}
}

// EnsureSchema is a no-op: Redis keys are created on first write.
func (r *RedisStore) EnsureSchema(context.Context) error {
	return nil
}

func (r *RedisStore) Insert(ctx context.Context, mapping *shortener.Mapping) error {
	res, err := insertScript.Run(ctx, r.client,
		[]string{r.prefix + string(mapping.Code), r.urlKey},
		string(mapping.Code),
		mapping.OriginalURL,
		mapping.CreatedAt.UnixNano(),
	).Int()
	if err != nil {
		return fmt.Errorf("insert mapping: %w", err)
	}

	switch res {
	case 0:
		return nil
	case 1:
		return shortener.NewConflictError(shortener.CodeConflict, nil)
	case 2:
		return shortener.NewConflictError(shortener.URLConflict, nil)
	default:
		return fmt.Errorf("insert mapping: unexpected script result %d", res)
	}
}

func (r *RedisStore) FindByCode(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("get mapping: %w", err)
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	var createdAt time.Time

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos).UTC()
		}
	}

	return &shortener.Mapping{
		Code:        shortener.Code(result["code"]),
		OriginalURL: result["original_url"],
		CreatedAt:   createdAt,
	}, nil
}

func (r *RedisStore) FindByURL(ctx context.Context, url string) (*shortener.Mapping, error) {
	code, err := r.client.HGet(ctx, r.urlKey, url).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("get code by url: %w", err)
	}

	mapping, err := r.FindByCode(ctx, shortener.Code(code))
	if errors.Is(err, shortener.ErrNotFound) {
		// The url index points at a code with no mapping hash.
		return &shortener.Mapping{OriginalURL: url}, nil
	}

	return mapping, err
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)
